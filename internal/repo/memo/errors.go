package memo_repo

import "errors"

var ErrEmptyKey = errors.New("remembered invoice key is empty")
