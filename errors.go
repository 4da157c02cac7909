package hpq

import "code.hybscloud.com/iox"

// ErrWouldBlock indicates DequeueTry cannot proceed immediately because the
// queue is empty at some point during the call.
//
// ErrWouldBlock is a control flow signal, not a failure: an empty queue is
// a normal, expected outcome of DequeueTry, never an error condition. This
// is an alias for [iox.ErrWouldBlock] so the error vocabulary matches the
// rest of this module's ecosystem.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    v, err := q.DequeueTry(ctx)
//	    if err == nil {
//	        backoff.Reset()
//	        process(v)
//	        break
//	    }
//	    if !hpq.IsWouldBlock(err) {
//	        return err
//	    }
//	    backoff.Wait()
//	}
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates the operation would block.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal rather than a failure.
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition
// (nil or ErrWouldBlock).
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
