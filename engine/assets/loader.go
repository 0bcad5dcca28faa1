package assets

import "github.com/spaghettifunk/anima-gl/engine/assets/loaders"

type Loader interface {
	// params is loader specific, nil selects the defaults
	Load(path string, params interface{}) (*loaders.Resource, error)
	Unload(*loaders.Resource) error
}
