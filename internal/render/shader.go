package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// The display program shades with the vertex colours produced by the mesh
// builder; occlusion is already baked in, so the fragment stage is flat.
const (
	meshVertexSrc = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;
layout (location = 2) in vec3 aNormal;

uniform mat4 uMVP;

out vec3 vColor;
out vec3 vNormal;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vColor = aColor;
	vNormal = aNormal;
}
`

	meshFragmentSrc = `
#version 410 core

in vec3 vColor;
in vec3 vNormal;

out vec4 FragColor;

void main() {
	// Slight directional tint so parallel faces read as distinct.
	float light = 0.85 + 0.15 * max(dot(normalize(vNormal), vec3(0.3, 0.8, 0.5)), 0.0);
	FragColor = vec4(vColor * light, 1.0);
}
`

	// The pick program renders the 24-bit voxel identifier as a flat
	// colour; reading a pixel back recovers the coordinate and face.
	pickVertexSrc = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 3) in vec3 aPickID;

uniform mat4 uMVP;

out vec3 vPickID;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vPickID = aPickID;
}
`

	pickFragmentSrc = `
#version 410 core

in vec3 vPickID;

out vec4 FragColor;

void main() {
	FragColor = vec4(vPickID, 1.0);
}
`
)

// compileProgram compiles a vertex and fragment shader pair and links
// them into a program.
func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log))
	}

	return program, nil
}

func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}

	return shader, nil
}

// uniform returns the uniform location for the given name.
func uniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
