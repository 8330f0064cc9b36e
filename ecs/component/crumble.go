package component

// CrumblePhase is the perforated-platform state.
type CrumblePhase int

const (
	CrumbleStable CrumblePhase = iota
	CrumbleWarned
	CrumbleCollapsed
)

// CrumblePlatform configures a platform that loses solidity after being
// stood on. Reusable platforms reform on the entered-Altered broadcast;
// single-use platforms stay collapsed.
type CrumblePlatform struct {
	// Delay is the warned-to-collapsed time in seconds.
	Delay float64
	// SingleUse makes the first collapse permanent.
	SingleUse bool
}

// CrumbleState is the platform's runtime phase. Used latches only for
// platforms configured single-use; it permanently suppresses reform.
type CrumbleState struct {
	Phase CrumblePhase
	// DelayLeft counts down from Delay while warned.
	DelayLeft float64
	Used      bool
}

var CrumblePlatformComponent = NewComponent[CrumblePlatform]()
var CrumbleStateComponent = NewComponent[CrumbleState]()
