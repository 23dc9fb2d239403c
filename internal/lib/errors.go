package lib

import "errors"

// BadUserInputError marks failures caused by flags, config values or files supplied by the user.
var BadUserInputError = errors.New("bad user input")
