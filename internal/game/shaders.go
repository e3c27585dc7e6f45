package game

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Sprite vertex shader: point sprites with per-vertex pos/size/color/rotation.
// Positions are in grid-cell units; uOrigin/uCellPx map them to the screen.
const spriteVertSrc = `#version 410 core

layout(location = 0) in vec2 aCellPos;
layout(location = 1) in float aSize;
layout(location = 2) in vec4 aColor;
layout(location = 3) in float aRotation;

uniform vec2 uOrigin;
uniform float uCellPx;
uniform vec2 uResolution;

out vec4 vColor;
out float vRotation;

void main() {
    vec2 screenPos = uOrigin + (aCellPos + vec2(0.5)) * uCellPx;
    vec2 ndc = (screenPos / uResolution) * 2.0 - 1.0;
    ndc.y = -ndc.y;
    gl_Position = vec4(ndc, 0.0, 1.0);
    float ps = floor(aSize * uCellPx + 0.5);
    gl_PointSize = max(1.0, ps);
    vColor = aColor;
    vRotation = aRotation;
}
` + "\x00"

// Sprite fragment shader: rotated rounded square.
const spriteFragSrc = `#version 410 core

in vec4 vColor;
in float vRotation;
out vec4 FragColor;

void main() {
    vec2 uv = gl_PointCoord - vec2(0.5);
    float c = cos(vRotation);
    float s = sin(vRotation);
    vec2 rot = vec2(c * uv.x - s * uv.y, s * uv.x + c * uv.y);
    float r = max(abs(rot.x), abs(rot.y));
    if (r > 0.48) discard;
    FragColor = vColor;
}
` + "\x00"

// Glow fragment shader: additive radial falloff for light sprites.
// vColor.rgb should be pre-multiplied by desired brightness.
const glowFragSrc = `#version 410 core

in vec4 vColor;
in float vRotation;
out vec4 FragColor;

void main() {
    float dist = length(gl_PointCoord - vec2(0.5)) * 2.0;
    float falloff = clamp(1.0 - dist, 0.0, 1.0);
    falloff = falloff * falloff; // quadratic: natural light falloff
    FragColor = vec4(vColor.rgb * falloff, 1.0);
}
` + "\x00"

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %s", strings.TrimRight(buf, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		buf := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(buf))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", strings.TrimRight(buf, "\x00"))
	}
	return program, nil
}
