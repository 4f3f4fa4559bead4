// Package polyvolume generates triangle meshes of volumes swept along paths
// on or above an ellipsoid.
//
// # Overview
//
// A 2-D cross-section (the shape) is carried along an ordered list of 3-D
// positions (the path). At every interior position the volume turns a corner,
// joined according to a CornerType: mitered, rounded or beveled. Both ends
// are closed with caps triangulated from the shape itself, so concave shapes
// are supported.
//
// The result is a flat-shaded Mesh: every wall quad and every cap owns its
// vertices, so normals are never smoothed across face boundaries. Positions
// are always produced; texture coordinates, normals, tangents and binormals
// are produced on request through a VertexFormat.
//
// # Quick Start
//
//	positions := ellipsoid.WGS84.CartographicArrayToCartesianArray([]ellipsoid.Cartographic{
//	    ellipsoid.FromDegrees(90, -30, 0),
//	    ellipsoid.FromDegrees(90, -31, 0),
//	    ellipsoid.FromDegrees(91, -31, 0),
//	})
//	square := []vec2.T{{-10000, -10000}, {10000, -10000}, {10000, 10000}, {-10000, 10000}}
//
//	v, err := polyvolume.New(positions, square,
//	    polyvolume.WithCornerType(polyvolume.CornerRounded),
//	    polyvolume.WithVertexFormat(polyvolume.VertexFormatAll),
//	)
//	if err != nil {
//	    return err
//	}
//	mesh, err := v.CreateGeometry()
//
// # Rendering
//
// Mesh.Interleave and Mesh.IndexBytes pack the mesh for upload to a GPU,
// Mesh.VertexBufferLayout describes the packed vertex buffer, and
// ShaderSource / CompileShader provide a matching preview shader.
//
// # Architecture
//
// The package is organized into:
//   - Public API: PolylineVolume, Mesh, CornerType, VertexFormat, options
//   - ellipsoid: geodetic conversion and the local up direction
//   - internal/shape, internal/polyline: input normalization and validation
//   - internal/corner, internal/sweep, internal/frame: ring placement
//   - internal/mesh: buffer assembly, optionally on internal/parallel workers
//
// # Logging
//
// polyvolume is silent by default. See SetLogger.
package polyvolume
