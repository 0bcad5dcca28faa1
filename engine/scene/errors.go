package scene

import "errors"

var (
	ErrNoRoot             = errors.New("scene has no root node")
	ErrCycle              = errors.New("node cannot become a descendant of itself")
	ErrForeignNode        = errors.New("node belongs to another scene")
	ErrNodeDetached       = errors.New("node does not belong to a scene")
	ErrComponentNotFound  = errors.New("component not found in scene")
	ErrComponentOwned     = errors.New("component already owned by a scene")
	ErrKindMismatch       = errors.New("component kind does not match bucket")
	ErrNodeOwnedKind      = errors.New("transforms are owned by their node")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrCameraDetached     = errors.New("camera component must be attached to a node")
	ErrRootChild          = errors.New("root node cannot become a child")
	ErrDuplicateComponent = errors.New("component listed more than once")
)
