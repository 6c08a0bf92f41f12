package schema

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-modelkit/pkg/hints"
	"github.com/microcosm-cc/bluemonday"
)

// HintSanitize makes Text.Normalize strip HTML from values. It accepts true
// or "strict" (no markup at all), "ugc" (user generated content policy) or a
// *bluemonday.Policy. false and "" clear it.
var HintSanitize = hints.Declare("sanitize", hints.WithSetter(setSanitize))

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy
	ugcPolicyOnce    sync.Once
	ugcPolicy        *bluemonday.Policy
)

func setSanitize(target hints.Target, hint *hints.Hint, value any) error {
	var policy *bluemonday.Policy
	switch v := value.(type) {
	case nil:
	case bool:
		if v {
			policy = strictSanitizer()
		}
	case string:
		switch v {
		case "":
		case "strict":
			policy = strictSanitizer()
		case "ugc":
			policy = ugcSanitizer()
		default:
			return fmt.Errorf("schema: unknown sanitize policy %q on %s", v, target)
		}
	case *bluemonday.Policy:
		policy = v
	default:
		return fmt.Errorf("schema: sanitize expects a bool, a policy name or *bluemonday.Policy, got %T on %s", value, target)
	}
	target.StoreHint(hint, policy)
	return nil
}

func sanitizerOf(f Field) *bluemonday.Policy {
	value, ok := f.Hint(HintSanitize)
	if !ok {
		return nil
	}
	policy, _ := value.(*bluemonday.Policy)
	return policy
}

func strictSanitizer() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

func ugcSanitizer() *bluemonday.Policy {
	ugcPolicyOnce.Do(func() {
		ugcPolicy = bluemonday.UGCPolicy()
	})
	return ugcPolicy
}
