// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// TerrainVertexShader displaces elevated grid vertices by the height field.
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader fills with a flat colour.
//
//go:embed terrain.frag
var TerrainFragmentShader string
