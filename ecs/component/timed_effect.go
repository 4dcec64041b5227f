package component

// TimedEffect is a purely cosmetic entity (impact blast) that participates
// in the retire pass like any projectile: position plus a ttl.
type TimedEffect struct {
	TTL float64
}

var TimedEffectComponent = NewComponent[TimedEffect]()
