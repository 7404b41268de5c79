package systems

import (
	"github.com/automoto/cavestory/components"
	"github.com/rs/zerolog/log"
	"github.com/yohamta/donburi"
)

// UpdateAnimations advances every entity's animation by dt milliseconds.
func UpdateAnimations(w donburi.World, dt float64) {
	components.Animation.Each(w, func(e *donburi.Entry) {
		anim := components.Animation.Get(e)
		if anim.Controller == nil {
			return
		}
		if ev := anim.Controller.Update(dt); ev.Done {
			log.Trace().Stringer("animation", ev.Animation).Msg("animation finished")
		}
	})
}
