package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/anima-gl/engine/assets/loaders"
	"github.com/spaghettifunk/anima-gl/engine/core"
)

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrNoLoader      = errors.New("no loader registered for asset type")
	ErrClosed        = errors.New("asset manager already closed")
)

type AssetInfo struct {
	Path       string
	Type       loaders.ResourceType
	LastLoaded time.Time
}

// AssetManager indexes the files of the asset directory, loads them through
// the loader registered for their type and watches the directory for
// changes. Changes are collected by the watcher goroutine and handed to the
// frame loop through PollChanges.
type AssetManager struct {
	root    string
	assets  map[string]AssetInfo
	loaders map[loaders.ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	watching bool
	changes  chan string
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	am := &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[loaders.ResourceType]Loader),
		fsnotify: fsWatch,
		changes:  make(chan string, 64),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	// Register loaders
	am.registerLoader(loaders.ResourceTypeShader, &loaders.ShaderLoader{})
	am.registerLoader(loaders.ResourceTypeImage, &loaders.ImageLoader{})
	am.registerLoader(loaders.ResourceTypeMaterial, &loaders.MaterialLoader{})
	am.registerLoader(loaders.ResourceTypeModel, &loaders.ModelLoader{})
	return am, nil
}

// Initialize indexes assetsDir recursively and starts watching it.
func (am *AssetManager) Initialize(assetsDir string) error {
	if am.isClosed {
		return ErrClosed
	}
	abs, err := filepath.Abs(assetsDir)
	if err != nil {
		return err
	}
	am.root = abs
	if err := am.watchRecursive(abs, false); err != nil {
		return err
	}
	am.watching = true
	go am.start()
	core.LogInfo("Asset manager watching %s (%d assets).", abs, am.Count())
	return nil
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType loaders.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// Count returns the number of indexed assets.
func (am *AssetManager) Count() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

// Path resolves a path relative to the asset root.
func (am *AssetManager) Path(rel string) string {
	return filepath.Join(am.root, filepath.FromSlash(rel))
}

// Load an asset using the appropriate loader. name is relative to the asset
// root.
func (am *AssetManager) LoadAsset(name string, params interface{}) (*loaders.Resource, error) {
	path := am.Path(name)

	am.mutex.Lock()
	asset, exists := am.assets[path]
	if exists {
		// Load or reload asset from disk if necessary
		asset.LastLoaded = time.Now()
		am.assets[path] = asset // Update the loaded time
	}
	am.mutex.Unlock()
	if !exists {
		return nil, fmt.Errorf("%s: %w", path, ErrAssetNotFound)
	}

	loader, loaderExists := am.loaders[asset.Type]
	if !loaderExists {
		return nil, fmt.Errorf("%s: %w", asset.Type, ErrNoLoader)
	}
	return loader.Load(path, params)
}

func (am *AssetManager) UnloadAsset(resource *loaders.Resource) error {
	loader, ok := am.loaders[resource.Type]
	if !ok {
		return fmt.Errorf("%s: %w", resource.Type, ErrNoLoader)
	}
	return loader.Unload(resource)
}

// LoadShaderSources reads shaders/<name>.vert and shaders/<name>.frag.
func (am *AssetManager) LoadShaderSources(name string) (string, string, error) {
	vert, err := am.LoadAsset("shaders/"+name+".vert", nil)
	if err != nil {
		return "", "", err
	}
	frag, err := am.LoadAsset("shaders/"+name+".frag", nil)
	if err != nil {
		return "", "", err
	}
	return vert.Data.(string), frag.Data.(string), nil
}

// Assets lists the indexed assets of one type, relative to the root.
func (am *AssetManager) Assets(assetType loaders.ResourceType) []string {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	var out []string
	for path, info := range am.assets {
		if info.Type != assetType {
			continue
		}
		if rel, err := filepath.Rel(am.root, path); err == nil {
			out = append(out, filepath.ToSlash(rel))
		}
	}
	return out
}

// PollChanges posts an EVENT_CODE_ASSET_CHANGED event for every asset that
// changed since the last call. It must be called from the frame loop.
func (am *AssetManager) PollChanges(events *core.EventSystem) int {
	n := 0
	for {
		select {
		case path := <-am.changes:
			rel, err := filepath.Rel(am.root, path)
			if err != nil {
				rel = path
			}
			events.Post(core.EventContext{
				Type: core.EVENT_CODE_ASSET_CHANGED,
				Data: &core.AssetEvent{Path: filepath.ToSlash(rel)},
			})
			n++
		default:
			return n
		}
	}
}

// Shutdown stops the watcher goroutine.
func (am *AssetManager) Shutdown() error {
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	close(am.done)
	if am.watching {
		<-am.stopped
		return nil
	}
	return am.fsnotify.Close()
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {

		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name, false); err != nil {
						core.LogWarn("failed to watch %s: %s", e.Name, err)
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if am.handleFileEvent(e.Name) {
					am.notify(e.Name)
				}
			}
			//Can't stat a deleted directory, so just pretend that it's always a directory and
			//try to remove from the watch list...  we really have no clue if it's a directory or not...
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
				_ = am.fsnotify.Remove(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("%s", err)

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

// notify never blocks the watcher, a full queue drops the change.
func (am *AssetManager) notify(path string) {
	select {
	case am.changes <- path:
	default:
		core.LogWarn("asset change queue full, dropping %s", path)
	}
}

// watchRecursive adds all directories under the given one to the watch list.
// this is probably a very racey process. What if a file is added to a folder before we get the watch added?
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				return am.fsnotify.Remove(walkPath)
			}
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file. Reports whether the file
// is a known asset type.
func (am *AssetManager) handleFileEvent(path string) bool {
	assetType := determineAssetType(path)
	if assetType == loaders.ResourceTypeNone {
		return false
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[path] = AssetInfo{
		Path:       path,
		Type:       assetType,
		LastLoaded: time.Now(),
	}
	return true
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, path)
}

func determineAssetType(path string) loaders.ResourceType {
	if strings.HasSuffix(path, ".mat.toml") {
		return loaders.ResourceTypeMaterial
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vert", ".frag", ".glsl":
		return loaders.ResourceTypeShader
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp":
		return loaders.ResourceTypeImage
	case ".obj":
		return loaders.ResourceTypeModel
	default:
		return loaders.ResourceTypeNone
	}
}
