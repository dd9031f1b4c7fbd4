package gpu

// Shader de superfície líquida: só vai para malhas com a flag de onda.
// As posições chegam relativas à câmera, então camPos é sempre a origem.
const waterVertexShader = `
#version 330

in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
in vec4 vertexColor;

uniform mat4 mvp;
uniform mat4 matModel;
uniform float time;

out vec2 fragTexCoord;
out vec4 fragColor;
out vec3 fragPos;
out float fragRipple;

void main()
{
    vec3 world = (matModel * vec4(vertexPosition, 1.0)).xyz;

    // Só a face de cima ondula; as laterais ficam presas à borda.
    float top = step(0.5, vertexNormal.y);
    float r1 = sin(world.x * 9.0 + time * 2.2);
    float r2 = cos(world.z * 7.0 - time * 1.7);
    float ripple = (r1 + r2) * 0.5;

    vec3 pos = vertexPosition;
    pos.y += ripple * 0.012 * top;

    fragTexCoord = vertexTexCoord + vec2(time * 0.02, time * 0.013);
    fragColor = vertexColor;
    fragPos = world;
    fragRipple = ripple * top;
    gl_Position = mvp * vec4(pos, 1.0);
}
`

const waterFragmentShader = `
#version 330

in vec2 fragTexCoord;
in vec4 fragColor;
in vec3 fragPos;
in float fragRipple;

uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec3 camPos;

out vec4 finalColor;

void main()
{
    vec4 base = texture(texture0, fragTexCoord) * fragColor * colDiffuse;

    vec3 n = normalize(vec3(-fragRipple * 0.15, 1.0, fragRipple * 0.1));
    vec3 viewDir = normalize(camPos - fragPos);
    vec3 lightDir = normalize(vec3(0.4, 0.9, 0.2));

    float fresnel = pow(1.0 - max(dot(viewDir, n), 0.0), 4.0);
    float spec = pow(max(dot(n, normalize(lightDir + viewDir)), 0.0), 48.0);

    vec3 rgb = mix(base.rgb, vec3(0.55, 0.7, 0.85), fresnel * 0.35) + spec * 0.35;
    finalColor = vec4(rgb, clamp(base.a + fresnel * 0.2, 0.0, 1.0));
}
`

// Shader dos blocos do guincho (tambor, balde, conteúdo parado). Sombreamento fixo por
// direção da face, com a normal girada junto com o modelo para o tambor não "levar" a luz.
const blockVertexShader = `
#version 330

in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
in vec4 vertexColor;

uniform mat4 mvp;
uniform mat4 matModel;

out vec2 fragTexCoord;
out vec4 fragColor;
out float fragShade;

void main()
{
    vec3 n = normalize(mat3(matModel) * vertexNormal);

    // Topo claro, base escura, eixos X e Z com tons diferentes.
    float up = max(n.y, 0.0);
    float down = max(-n.y, 0.0);
    fragShade = 0.5 * down + 1.0 * up + 0.8 * abs(n.z) + 0.62 * abs(n.x);
    fragShade = clamp(fragShade, 0.45, 1.0);

    fragTexCoord = vertexTexCoord;
    fragColor = vertexColor;
    gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`

const blockFragmentShader = `
#version 330

in vec2 fragTexCoord;
in vec4 fragColor;
in float fragShade;

uniform sampler2D texture0;
uniform vec4 colDiffuse;

out vec4 finalColor;

void main()
{
    vec4 texel = texture(texture0, fragTexCoord) * fragColor * colDiffuse;
    if (texel.a < 0.1) discard;
    finalColor = vec4(texel.rgb * fragShade, texel.a);
}
`
