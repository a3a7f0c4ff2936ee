package game

const (
	projectileSpeed    = 0.4  // units per tick
	projectileLifetime = 100  // ticks
	muzzleHeight       = 0.75 // spawn offset above the hull
)

// Projectile is a single fired shell. Its velocity is fixed at creation.
type Projectile struct {
	pos         Vec3
	vel         Vec3
	heading     float64
	lifetime    int
	damage      int
	playerOwned bool
	disposed    bool
}

// NewProjectile creates a shell travelling along heading from origin.
func NewProjectile(origin Vec3, heading float64, playerOwned bool, damage int) *Projectile {
	return &Projectile{
		pos:         origin,
		vel:         forward(heading).Scale(projectileSpeed),
		heading:     heading,
		lifetime:    projectileLifetime,
		damage:      damage,
		playerOwned: playerOwned,
	}
}

// Advance moves the shell one tick and burns one tick of lifetime.
// Shells are not clamped to the arena; they fly off and expire.
func (p *Projectile) Advance() {
	p.pos = p.pos.Add(p.vel)
	p.lifetime--
}

// Expired reports whether the lifetime has run out.
func (p *Projectile) Expired() bool {
	return p.lifetime <= 0
}

// Dispose marks the shell as consumed. Safe to call more than once.
func (p *Projectile) Dispose() {
	p.disposed = true
}

// Disposed reports whether the shell hit something or was torn down.
func (p *Projectile) Disposed() bool {
	return p.disposed
}

func (p *Projectile) Damage() int       { return p.damage }
func (p *Projectile) Position() Vec3    { return p.pos }
func (p *Projectile) Velocity() Vec3    { return p.vel }
func (p *Projectile) Heading() float64  { return p.heading }
func (p *Projectile) Lifetime() int     { return p.lifetime }
func (p *Projectile) PlayerOwned() bool { return p.playerOwned }
