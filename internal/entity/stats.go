package entity

// Level-up threshold constants, shared by every actor that can advance.
const (
	levelUpBase   = 200
	levelUpFactor = 150
)

// Stats tracks an actor's experience level. XPGiven is the reward granted
// to whoever lands the killing blow.
type Stats struct {
	CurrentLevel int
	CurrentXP    int
	XPGiven      int
}

// NewStats builds an XP tracker. Monsters carry only a reward value;
// the player starts at level 1.
func NewStats(xpGiven int) Stats {
	return Stats{CurrentLevel: 1, XPGiven: xpGiven}
}

// ExperienceToNextLevel returns the XP threshold for the next level.
func (s *Stats) ExperienceToNextLevel() int {
	return levelUpBase + s.CurrentLevel*levelUpFactor
}

// RequiresLevelUp reports whether enough XP has accumulated to advance.
func (s *Stats) RequiresLevelUp() bool {
	return s.CurrentXP >= s.ExperienceToNextLevel()
}

// AddXP accumulates experience and reports whether a level-up is now due.
func (s *Stats) AddXP(xp int) bool {
	if xp <= 0 {
		return false
	}
	s.CurrentXP += xp
	return s.RequiresLevelUp()
}

// advance consumes one threshold worth of XP and increments the level.
func (s *Stats) advance() {
	s.CurrentXP -= s.ExperienceToNextLevel()
	s.CurrentLevel++
}

// IncreaseMaxHP is the level-up boost adding 20 max hit points and
// healing by the same amount.
func (s *Stats) IncreaseMaxHP(f *Fighter) {
	s.advance()
	f.MaxHP += 20
	f.hp += 20
}

// IncreasePower is the level-up boost adding 1 base attack power.
func (s *Stats) IncreasePower(f *Fighter) {
	s.advance()
	f.BasePower++
}

// IncreaseDefense is the level-up boost adding 1 base defense.
func (s *Stats) IncreaseDefense(f *Fighter) {
	s.advance()
	f.BaseDefense++
}
