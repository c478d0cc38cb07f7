package engine

// Scene holds the root GameObjects. Children are reached through their
// parents; only roots are listed in GameObjects.
type Scene struct {
	Name        string
	GameObjects []*GameObject
	uidMap      map[uint64]*GameObject
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		uidMap:      make(map[uint64]*GameObject),
	}
}

func (s *Scene) AddGameObject(g *GameObject) {
	s.GameObjects = append(s.GameObjects, g)
	s.Register(g)
}

// Register indexes an object attached to the scene through a parent after
// its parent was added.
func (s *Scene) Register(g *GameObject) {
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*GameObject)
	}
	g.Walk(func(obj *GameObject) {
		obj.Scene = s
		s.uidMap[obj.UID] = obj
	})
}

// RemoveGameObject removes a root object and its whole subtree.
func (s *Scene) RemoveGameObject(g *GameObject) {
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			break
		}
	}
	g.Walk(func(obj *GameObject) {
		delete(s.uidMap, obj.UID)
		obj.Scene = nil
	})
}

func (s *Scene) FindByUID(uid uint64) *GameObject {
	return s.uidMap[uid]
}

// FindByName searches roots and their descendants.
func (s *Scene) FindByName(name string) *GameObject {
	var found *GameObject
	s.Walk(func(g *GameObject) {
		if found == nil && g.Name == name {
			found = g
		}
	})
	return found
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	s.Walk(func(g *GameObject) {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	})
	return result
}

// Walk visits every object in the scene, parents before children.
func (s *Scene) Walk(fn func(*GameObject)) {
	for _, g := range s.GameObjects {
		g.Walk(fn)
	}
}

func (s *Scene) Start() {
	for _, g := range s.GameObjects {
		g.Start()
	}
}

func (s *Scene) Update(deltaTime float32) {
	for _, g := range s.GameObjects {
		g.Update(deltaTime)
	}
}
