package async

import "errors"

// ErrSuperseded is returned by a Latest task that was overtaken by a newer submission.
var ErrSuperseded = errors.New("async: superseded by a newer submission")
