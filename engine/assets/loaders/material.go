package loaders

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/anima-gl/engine/core"
	"github.com/spaghettifunk/anima-gl/engine/scene"
)

/** @brief Material configuration as stored in a .mat.toml file. */
type MaterialConfig struct {
	Name          string     `toml:"name"`
	ShaderName    string     `toml:"shader"`
	DiffuseColour [4]float32 `toml:"diffuse_colour"`
	Shininess     float32    `toml:"shininess"`
	// sampler uniform -> texture asset name
	Textures map[string]string `toml:"textures"`
}

type MaterialLoader struct{}

func (ml *MaterialLoader) Load(path string, params interface{}) (*Resource, error) {
	mCfg, err := parseMaterialFile(path)
	if err != nil {
		return nil, err
	}
	return &Resource{
		Name:     mCfg.Name,
		FullPath: path,
		Type:     ResourceTypeMaterial,
		DataSize: uint64(unsafe.Sizeof(MaterialConfig{})),
		Data:     mCfg,
	}, nil
}

func (ml *MaterialLoader) Unload(*Resource) error {
	return nil
}

func parseMaterialFile(filename string) (*MaterialConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseMaterial(data)
}

// ParseMaterial decodes and validates a TOML material. Unknown keys are
// logged and skipped.
func ParseMaterial(data []byte) (*MaterialConfig, error) {
	materialConfig := &MaterialConfig{
		DiffuseColour: [4]float32{1, 1, 1, 1},
	}
	if err := toml.Unmarshal(data, materialConfig); err != nil {
		return nil, fmt.Errorf("invalid material: %w", err)
	}

	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err == nil {
		for key := range raw {
			switch key {
			case "name", "shader", "diffuse_colour", "shininess", "textures":
			default:
				core.LogError("Unknown key '%s' found in material. Skipping...", key)
			}
		}
	}

	if err := validateMaterial(materialConfig); err != nil {
		return nil, err
	}
	return materialConfig, nil
}

func validateMaterial(material *MaterialConfig) error {
	if material.Name == "" {
		return fmt.Errorf("material name is required")
	}

	if material.ShaderName == "" {
		return fmt.Errorf("shader name is required")
	}

	// Check that DiffuseColour values are within [0.0, 1.0] range
	for _, c := range material.DiffuseColour {
		if !inRange(c) {
			return fmt.Errorf("diffuse_colour values must be between 0.0 and 1.0")
		}
	}

	// Check shininess for a non-negative value
	if material.Shininess < 0 {
		return fmt.Errorf("shininess must be a non-negative value")
	}

	for uniform, texture := range material.Textures {
		if uniform == "" || texture == "" {
			return fmt.Errorf("invalid texture binding %q = %q", uniform, texture)
		}
	}
	return nil
}

// Check if a float32 value is within [0.0, 1.0]
func inRange(value float32) bool {
	return value >= 0.0 && value <= 1.0
}

// Material converts the configuration into a scene material.
func (c *MaterialConfig) Material() *scene.Material {
	m := scene.NewMaterial(c.Name)
	m.DiffuseColor = mgl32.Vec4(c.DiffuseColour)
	for uniform, texture := range c.Textures {
		m.Textures[uniform] = texture
	}
	return m
}
