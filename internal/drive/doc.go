// Package drive turns discrete direction commands into left/right track
// speeds for a skid-steered vehicle.
//
// A [Controller] owns the current pair of track speeds and a fixed set of
// [Limits]. Each call to [Controller.Apply] nudges the pair by one step:
//
//   - [Stop]: both tracks to the baseline
//   - [TurnLeft], [TurnRight]: spin in place when stopped or spinning,
//     otherwise arc by changing one track
//   - [MoveForward], [MoveBack]: accelerate when straight, straighten an arc,
//     or halt a spin
//
// # Usage
//
//	ctrl, err := drive.New(0, 100, 20)
//	if err != nil {
//	    return err
//	}
//	left, right, err := ctrl.Apply(drive.MoveForward)
//
// Every transition is chosen from the [Motion] reported by [Classify], and
// the result is re-checked so that one track is never left at rest while the
// other turns. A Controller is not safe for concurrent use.
package drive
