package ecs

import "strconv"

// Entity packs a 32-bit id with a 32-bit generation. Components store the
// raw uint64 (TurretAim.Base, Transform.Parent) and 0 means no entity.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// String renders "<id>v<generation>" for logs.
func (e Entity) String() string {
	return strconv.FormatUint(uint64(e.id()), 10) + "v" + strconv.FormatUint(uint64(e.generation()), 10)
}

// Valid reports whether e can name an entity at all; liveness is
// World.IsAlive.
func (e Entity) Valid() bool {
	return e.id() > 0
}
