// Package validator provides small, composable validation rules that
// aggregate field-level failures into a single error value.
//
// Every exported rule constructor returns a Rule: a Check closure paired with
// translation-friendly error metadata. Apply evaluates the rules in order and
// returns ValidationErrors when any of them fail.
//
// # Usage
//
//	err := validator.Apply(
//	    validator.RequiredString("ssid", rec.SSID),
//	    validator.RangeNum("size", opts.Size, 32, 4096),
//	    validator.ValidHexColor("foreground", opts.Foreground),
//	)
//	if err != nil {
//	    if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	        // inspect verrs.Fields() or verrs.Get("ssid")
//	    }
//	}
//
// # Error Handling
//
// ValidationErrors matches ErrValidationFailed with errors.Is, so callers that
// only care about the error category do not have to unwrap it.
package validator
