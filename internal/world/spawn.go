package world

// Spawn is a player spawn position with packed yaw and pitch bytes.
type Spawn struct {
	X, Y, Z    int
	Yaw, Pitch uint8
}

// DefaultSpawn places the spawn above the highest standable block of the centre column.
func DefaultSpawn(l *Level) Spawn {
	x, z := l.Width/2, l.Length/2
	spawn := Spawn{X: x, Z: z}
	for y := l.MaxY(); y >= 0; y-- {
		if l.Block(x, y, z).IsSolid() {
			spawn.Y = y + 1
			break
		}
	}
	if spawn.Y > l.MaxY() {
		spawn.Y = l.MaxY()
	}
	return spawn
}
