package bothelper

import (
	"fmt"
)

// TryCatch model
type TryCatch struct {
	Try   func()
	Catch func(error)
}

// Do run TryCatch
func (t TryCatch) Do() {
	defer func() {
		if r := recover(); r != nil {
			var err error
			switch e := r.(type) {
			case error:
				err = e
			default:
				err = fmt.Errorf("%v", r)
			}

			if t.Catch != nil {
				t.Catch(err)
			}
		}
	}()
	t.Try()
}

// Recover runs fn and converts a panic raised inside it into the returned error
func Recover(fn func() error) (err error) {
	TryCatch{
		Try: func() {
			err = fn()
		},
		Catch: func(e error) {
			err = e
		},
	}.Do()
	return err
}
