package loaders

type ResourceType uint8

const (
	ResourceTypeNone ResourceType = iota
	ResourceTypeShader
	ResourceTypeImage
	ResourceTypeMaterial
	ResourceTypeModel
)

func (rt ResourceType) String() string {
	switch rt {
	case ResourceTypeShader:
		return "shader"
	case ResourceTypeImage:
		return "image"
	case ResourceTypeMaterial:
		return "material"
	case ResourceTypeModel:
		return "model"
	}
	return "none"
}

/** @brief A loaded asset. Data holds the loader specific payload. */
type Resource struct {
	Name     string
	FullPath string
	Type     ResourceType
	DataSize uint64
	// string for shaders, image.Image for images, *MaterialConfig for
	// materials and *ModelData for models.
	Data interface{}
}

/** @brief Parameters used when loading an image. */
type ImageResourceParams struct {
	/** @brief Indicates if the image should be flipped on the y-axis when loaded. */
	FlipY bool
}
