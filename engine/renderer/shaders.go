package renderer

import _ "embed"

//go:embed shaders/mesh.wgsl
var meshShaderSource string

//go:embed shaders/overlay.wgsl
var overlayShaderSource string
