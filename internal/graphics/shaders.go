package graphics

// Tile quads: position in tiles, UV, texture array layer.
const tileVertexShader = `#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aUV;
layout (location = 2) in float aLayer;

uniform mat4 projection;

out vec2 vUV;
flat out float vLayer;

void main() {
    // sprites are stored top row first
    vUV = vec2(aUV.x, 1.0 - aUV.y);
    vLayer = aLayer;
    gl_Position = projection * vec4(aPos, 0.0, 1.0);
}
`

const tileFragmentShader = `#version 410 core
in vec2 vUV;
flat in float vLayer;

uniform sampler2DArray tiles;

out vec4 FragColor;

void main() {
    vec4 c = texture(tiles, vec3(vUV, vLayer));
    if (c.a < 0.1) discard;
    FragColor = c;
}
`

const textVertexShader = `#version 410 core
layout (location = 0) in vec4 vertex; // xy position, zw uv

uniform mat4 projection;

out vec2 TexCoords;

void main() {
    gl_Position = projection * vec4(vertex.xy, 0.0, 1.0);
    TexCoords = vertex.zw;
}
`

const textFragmentShader = `#version 410 core
in vec2 TexCoords;

uniform sampler2D text;
uniform vec3 textColor;

out vec4 FragColor;

void main() {
    float a = texture(text, TexCoords).r;
    FragColor = vec4(textColor, a);
}
`
