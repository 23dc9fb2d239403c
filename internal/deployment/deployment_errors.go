package deployment

import (
	"fmt"

	"github.com/AnotherFullstackDev/cloudrunctl/internal/lib"
)

var (
	ErrUnknownOption           = fmt.Errorf("%w - unknown option", lib.BadUserInputError)
	ErrMissingRequiredArgument = fmt.Errorf("%w - missing required argument", lib.BadUserInputError)
	ErrEnvFileNotFound         = fmt.Errorf("%w - env file not found", lib.BadUserInputError)
)
