package arbor

// The built-in main-pass shader: Blinn-Phong lighting with cascaded
// directional shadows and cube-mapped point shadows. Engines that
// register no shader of their own fall back to this one.

const defaultVert = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec4 aColor;
layout (location = 3) in vec2 aTexUV;

uniform mat4 u_Model;
uniform mat4 u_VP;

out vec3 FragPos;
out vec3 Normal;
out vec4 VertColor;
out vec2 TexUV;

void main() {
    vec4 world = u_Model * vec4(aPos, 1.0);
    FragPos = world.xyz;
    Normal = mat3(transpose(inverse(u_Model))) * aNormal;
    VertColor = aColor;
    TexUV = aTexUV;
    gl_Position = u_VP * world;
}
`

const defaultFrag = `#version 410 core
in vec3 FragPos;
in vec3 Normal;
in vec4 VertColor;
in vec2 TexUV;

out vec4 FragColor;

struct DirectLight {
    vec3 direction;
    vec4 color;
    float intensity;
    int shadowIndex;
    int cascadeLevel;
    float cascadeSplit[4];
    float farPlane;
    mat4 lightSpaceMatrices[4];
};

struct PointLight {
    vec3 position;
    vec4 color;
    float intensity;
    float nearPlane;
    float farPlane;
    int shadowIndex;
};

struct SceneParams {
    float ambient;
    float biasFactor;
    float biasOffset;
};

uniform DirectLight directLights[4];
uniform PointLight pointLights[8];
uniform int directLightLength;
uniform int pointLightLength;
uniform SceneParams scene;

uniform sampler2DArray shadowMaps;
uniform samplerCubeArray shadowCubeMaps;

uniform sampler2D diffuse0;
uniform bool useTexture;
uniform vec4 baseColorFactor;
uniform bool useAlphaCutoff;
uniform float alphaCutoff;

uniform vec3 camPos;

float directShadow(DirectLight light, vec3 normal) {
    float dist = length(FragPos - camPos);
    int cascade = light.cascadeLevel - 1;
    for (int i = 0; i < light.cascadeLevel; ++i) {
        if (dist < light.cascadeSplit[i] * light.farPlane) {
            cascade = i;
            break;
        }
    }

    vec4 lightSpace = light.lightSpaceMatrices[cascade] * vec4(FragPos, 1.0);
    vec3 coords = lightSpace.xyz / lightSpace.w * 0.5 + 0.5;
    if (coords.z > 1.0) {
        return 0.0;
    }

    float bias = max(scene.biasFactor * (1.0 - dot(normal, -light.direction)), scene.biasOffset);
    float shadow = 0.0;
    vec2 texel = 1.0 / vec2(textureSize(shadowMaps, 0));
    for (int x = -1; x <= 1; ++x) {
        for (int y = -1; y <= 1; ++y) {
            float depth = texture(shadowMaps,
                vec3(coords.xy + vec2(x, y) * texel, light.shadowIndex + cascade)).r;
            shadow += coords.z - bias > depth ? 1.0 : 0.0;
        }
    }
    return shadow / 9.0;
}

float pointShadow(PointLight light) {
    vec3 toFrag = FragPos - light.position;
    float depth = texture(shadowCubeMaps, vec4(toFrag, light.shadowIndex)).r;
    float bias = max(scene.biasFactor * light.farPlane, scene.biasOffset);
    return length(toFrag) - bias > depth * light.farPlane ? 1.0 : 0.0;
}

vec3 shadeDirect(DirectLight light, vec3 normal, vec3 viewDir, vec3 albedo) {
    vec3 lightDir = normalize(-light.direction);
    float diff = max(dot(normal, lightDir), 0.0);
    vec3 halfway = normalize(lightDir + viewDir);
    float spec = pow(max(dot(normal, halfway), 0.0), 32.0) * 0.5;
    float shadow = directShadow(light, normal);
    return (diff + spec) * (1.0 - shadow) * light.intensity * light.color.rgb * albedo;
}

vec3 shadePoint(PointLight light, vec3 normal, vec3 viewDir, vec3 albedo) {
    vec3 toLight = light.position - FragPos;
    float dist = length(toLight);
    vec3 lightDir = toLight / dist;
    float attenuation = 1.0 / (1.0 + 0.09 * dist + 0.032 * dist * dist);
    float diff = max(dot(normal, lightDir), 0.0);
    vec3 halfway = normalize(lightDir + viewDir);
    float spec = pow(max(dot(normal, halfway), 0.0), 32.0) * 0.5;
    float shadow = pointShadow(light);
    return (diff + spec) * (1.0 - shadow) * attenuation * light.intensity * light.color.rgb * albedo;
}

void main() {
    vec4 base = VertColor * baseColorFactor;
    if (useTexture) {
        base *= texture(diffuse0, TexUV);
    }
    if (useAlphaCutoff && base.a < alphaCutoff) {
        discard;
    }

    vec3 normal = normalize(Normal);
    vec3 viewDir = normalize(camPos - FragPos);

    vec3 lit = scene.ambient * base.rgb;
    for (int i = 0; i < directLightLength; ++i) {
        lit += shadeDirect(directLights[i], normal, viewDir, base.rgb);
    }
    for (int i = 0; i < pointLightLength; ++i) {
        lit += shadePoint(pointLights[i], normal, viewDir, base.rgb);
    }

    FragColor = vec4(lit, base.a);
}
`

// NewDefaultShader compiles the built-in main-pass shader.
func NewDefaultShader() (*Shader, error) {
	return NewShaderSource(defaultVert, defaultFrag, "")
}
