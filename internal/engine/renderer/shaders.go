package renderer

const vertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aUV;

uniform mat4 uMVP;

out vec2 vUV;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vUV = aUV;
}
`

// Flat unlit shading: the material color, or the texture when one is bound.
const fragmentShader = `
#version 410 core

in vec2 vUV;

uniform vec4 uColor;
uniform sampler2D uTexture;
uniform bool uTextured;

out vec4 FragColor;

void main() {
	vec4 c = uColor;
	if (uTextured) {
		c = vec4(texture(uTexture, vUV).rgb, uColor.a);
	}
	if (c.a < 0.01) {
		discard;
	}
	FragColor = c;
}
`
