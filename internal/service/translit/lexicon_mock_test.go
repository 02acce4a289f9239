package translit

import (
	"sync"
)

var _ lexicon = &lexiconMock{}

type lexiconMock struct {
	LookupFunc func(word string) ([][]string, error)

	calls struct {
		Lookup []struct {
			Word string
		}
	}
	lockLookup sync.RWMutex
}

func (mock *lexiconMock) Lookup(word string) ([][]string, error) {
	if mock.LookupFunc == nil {
		panic("lexiconMock.LookupFunc: method is nil but lexicon.Lookup was just called")
	}
	callInfo := struct{ Word string }{Word: word}
	mock.lockLookup.Lock()
	mock.calls.Lookup = append(mock.calls.Lookup, callInfo)
	mock.lockLookup.Unlock()
	return mock.LookupFunc(word)
}

func (mock *lexiconMock) LookupCalls() []struct{ Word string } {
	mock.lockLookup.RLock()
	calls := mock.calls.Lookup
	mock.lockLookup.RUnlock()
	return calls
}
