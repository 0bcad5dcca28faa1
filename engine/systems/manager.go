package systems

import (
	"fmt"
	"image"
	"path"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spaghettifunk/anima-gl/engine/assets"
	"github.com/spaghettifunk/anima-gl/engine/assets/loaders"
	"github.com/spaghettifunk/anima-gl/engine/core"
	"github.com/spaghettifunk/anima-gl/engine/renderer"
	"github.com/spaghettifunk/anima-gl/engine/scene"
)

type SystemManagerConfig struct {
	AssetsDir      string
	Workers        int
	JobQueueSize   int
	EventQueueSize int
	// Registerer receives the frame metrics, nil keeps them private.
	Registerer prometheus.Registerer
}

// SystemManager owns the engine subsystems and wires them together. All of
// its methods must be called from the frame loop goroutine.
type SystemManager struct {
	Events   *core.EventSystem
	Input    *core.Input
	Metrics  *core.Metrics
	Assets   *assets.AssetManager
	Jobs     *JobSystem
	Graphics *renderer.GraphicsManager
	Renderer *renderer.Renderer

	assetsDir string
	// texture name -> asset path, used to reload textures when the file changes
	texturePaths map[string]string
}

func NewSystemManager(config SystemManagerConfig, device renderer.Device) (*SystemManager, error) {
	if config.Workers <= 0 {
		config.Workers = 1
	}

	events := core.NewEventSystem(config.EventQueueSize)

	metrics, err := core.NewMetrics(config.Registerer)
	if err != nil {
		return nil, err
	}

	am, err := assets.NewAssetManager()
	if err != nil {
		return nil, err
	}

	js, err := NewJobSystem(config.Workers, config.JobQueueSize)
	if err != nil {
		return nil, err
	}

	gm, err := renderer.NewGraphicsManager(device)
	if err != nil {
		return nil, err
	}

	return &SystemManager{
		Events:       events,
		Input:        core.NewInput(events),
		Metrics:      metrics,
		Assets:       am,
		Jobs:         js,
		Graphics:     gm,
		Renderer:     renderer.NewRenderer(gm),
		assetsDir:    config.AssetsDir,
		texturePaths: make(map[string]string),
	}, nil
}

// Initialize starts watching the asset directory and brings the graphics
// device up. The device context must be current on the calling goroutine.
func (sm *SystemManager) Initialize(deviceConfig renderer.DeviceConfig) error {
	if err := sm.Assets.Initialize(sm.assetsDir); err != nil {
		return err
	}
	if err := sm.Renderer.Initialize(deviceConfig); err != nil {
		return err
	}
	if _, err := sm.Events.Register(core.EVENT_CODE_ASSET_CHANGED, sm.onAssetChanged); err != nil {
		return err
	}
	return nil
}

// Update runs the per frame housekeeping: pending job callbacks and asset
// changes.
func (sm *SystemManager) Update() {
	sm.Jobs.Update()
	sm.Assets.PollChanges(sm.Events)
}

// LoadShader compiles shaders/<name>.vert and shaders/<name>.frag.
func (sm *SystemManager) LoadShader(name string) (*renderer.Shader, error) {
	vs, fs, err := sm.Assets.LoadShaderSources(name)
	if err != nil {
		return nil, err
	}
	return sm.Graphics.UploadShader(name, vs, fs)
}

// LoadTexture decodes the image on a worker and uploads it once decoded. The
// texture is registered under name, done (optional) sees the outcome.
func (sm *SystemManager) LoadTexture(name, assetPath string, done func(*renderer.Texture, error)) error {
	sm.texturePaths[name] = assetPath
	return sm.Jobs.Submit(JobTask{
		Name: "texture:" + name,
		OnStart: func() (interface{}, error) {
			res, err := sm.Assets.LoadAsset(assetPath, &loaders.ImageResourceParams{FlipY: true})
			if err != nil {
				return nil, err
			}
			return res.Data, nil
		},
		OnComplete: func(result interface{}) {
			tex, err := sm.Graphics.UploadTexture(name, result.(image.Image))
			if err != nil {
				core.LogError("failed to upload texture %s: %s", name, err)
			}
			if done != nil {
				done(tex, err)
			}
		},
		OnFailure: func(err error) {
			if done != nil {
				done(nil, err)
			}
		},
	})
}

// LoadMaterial reads a material definition and queues its textures.
func (sm *SystemManager) LoadMaterial(assetPath string) (*scene.Material, error) {
	res, err := sm.Assets.LoadAsset(assetPath, nil)
	if err != nil {
		return nil, err
	}
	cfg, ok := res.Data.(*loaders.MaterialConfig)
	if !ok {
		return nil, fmt.Errorf("%s is a %s, not a material", assetPath, res.Type)
	}
	for _, texture := range cfg.Textures {
		if _, loaded := sm.Graphics.Texture(texture); loaded {
			continue
		}
		if _, pending := sm.texturePaths[texture]; pending {
			continue
		}
		if err := sm.LoadTexture(texture, "textures/"+texture, nil); err != nil {
			return nil, err
		}
	}
	return cfg.Material(), nil
}

// LoadModel reads an OBJ model into a mesh component. Submesh materials are
// looked up as materials/<name>.mat.toml, missing ones leave the submesh
// untextured.
func (sm *SystemManager) LoadModel(assetPath string) (*scene.Mesh, error) {
	res, err := sm.Assets.LoadAsset(assetPath, nil)
	if err != nil {
		return nil, err
	}
	model, ok := res.Data.(*loaders.ModelData)
	if !ok {
		return nil, fmt.Errorf("%s is a %s, not a model", assetPath, res.Type)
	}

	materials := make(map[string]*scene.Material)
	mesh := scene.NewMesh(model.Name)
	for _, sub := range model.SubMeshes {
		var material *scene.Material
		if sub.MaterialName != "" {
			material, ok = materials[sub.MaterialName]
			if !ok {
				material, err = sm.LoadMaterial("materials/" + sub.MaterialName + ".mat.toml")
				if err != nil {
					core.LogWarn("model %s: material %s unavailable: %s", model.Name, sub.MaterialName, err)
				}
				materials[sub.MaterialName] = material
			}
		}
		mesh.AddSubMesh(scene.NewSubMesh(sub.Name, sub.Vertices, sub.Indices, material))
	}
	return mesh, nil
}

func (sm *SystemManager) onAssetChanged(context core.EventContext) bool {
	ev, ok := context.Data.(*core.AssetEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}

	if strings.HasPrefix(ev.Path, "shaders/") {
		name := strings.TrimSuffix(path.Base(ev.Path), path.Ext(ev.Path))
		if _, loaded := sm.Graphics.Shader(name); !loaded {
			return false
		}
		vs, fs, err := sm.Assets.LoadShaderSources(name)
		if err == nil {
			err = sm.Graphics.ReloadShader(name, vs, fs)
		}
		if err != nil {
			core.LogError("shader %s not reloaded: %s", name, err)
			return false
		}
		core.LogInfo("Reloaded shader %s.", name)
		return true
	}

	for name, assetPath := range sm.texturePaths {
		if assetPath == ev.Path {
			if err := sm.LoadTexture(name, assetPath, nil); err != nil {
				core.LogError("texture %s not reloaded: %s", name, err)
				return false
			}
			return true
		}
	}
	return false
}

// Shutdown releases the subsystems in reverse order of creation.
func (sm *SystemManager) Shutdown() error {
	if err := sm.Jobs.Shutdown(); err != nil {
		return err
	}
	if err := sm.Renderer.Shutdown(); err != nil {
		return err
	}
	if err := sm.Assets.Shutdown(); err != nil {
		return err
	}
	return sm.Events.Shutdown()
}
