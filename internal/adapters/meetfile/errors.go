package meetfile

import "errors"

// ErrInvalidMeet wraps every validation problem found in a meet file.
var ErrInvalidMeet = errors.New("invalid meet file")
