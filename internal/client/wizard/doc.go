// Package wizard implements the vehicle onboarding flow as an explicit,
// caller-owned state machine.
//
// Steps
//
//	0                 scalar form fields
//	1 .. len(Tags)    one photo per tag, in models.Tags order
//	len(Tags)+1       review and submit
//
// The cursor only moves forward (Next) or back to 0 (Reset, or a
// successful Submit). Every forward move is guarded: step 0 by
// ValidateFields, each photo step by ValidateImage for its tag. A failed
// guard leaves the cursor where it is and records the messages, which
// Errors returns.
//
// A Wizard is not safe for concurrent use; it is driven by one caller,
// one action at a time. Construct a fresh one per onboarding session.
package wizard
