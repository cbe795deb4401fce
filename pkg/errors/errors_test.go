package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormat(t *testing.T) {
	err := New(CodeCollectionMissing, "processes directory not found").
		WithContext("path", "/opt/atom/processes")
	got := err.Error()
	if !strings.HasPrefix(got, "[E101] processes directory not found") {
		t.Errorf("Error() = %q", got)
	}
	if !strings.Contains(got, "path=/opt/atom/processes") {
		t.Errorf("context missing from %q", got)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := Wrap(cause, CodeFilePermission, "cannot read directory")
	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
	if !strings.Contains(err.Error(), "permission denied") {
		t.Errorf("cause missing from %q", err.Error())
	}
	if Wrap(nil, CodeUnknown, "x") != nil {
		t.Error("Wrap(nil) should be nil")
	}
}

func TestIsCodeThroughWrapping(t *testing.T) {
	inner := CollectionMissing("execution", "/opt/atom/execution")
	outer := fmt.Errorf("startup: %w", inner)

	if !IsCode(outer, CodeCollectionMissing) {
		t.Error("IsCode failed through fmt wrapping")
	}
	if GetCode(outer) != CodeCollectionMissing {
		t.Errorf("GetCode = %s", GetCode(outer))
	}
	if GetCode(fmt.Errorf("plain")) != CodeUnknown {
		t.Error("plain error should map to CodeUnknown")
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(CollectionMissing("processes", "/x")) {
		t.Error("missing collection must be fatal")
	}
	if IsFatal(DescriptorMissing("key")) {
		t.Error("descriptor skip must not be fatal")
	}
	if IsFatal(NoData()) {
		t.Error("empty result must not be fatal")
	}
	if IsFatal(fmt.Errorf("plain")) {
		t.Error("unknown errors must not be fatal")
	}
}
