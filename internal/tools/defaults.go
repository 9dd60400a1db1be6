package tools

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// ContactDefaults supplies placeholder contact details for staff
// created without them. It is a convenience default, not a business
// rule: pass nil to disable synthesis, which makes email required on
// creation.
type ContactDefaults interface {
	Email() string
	Phone() string
}

// placeholderDomain is fixed so synthesized addresses are recognizable
// and can never collide with a real mailbox.
const placeholderDomain = "staff-placeholder.invalid"

// SynthesizedContacts generates unique-looking placeholder contact
// details: a timestamped email under a fixed domain and an all-zero
// prefixed phone number.
type SynthesizedContacts struct{}

func (SynthesizedContacts) Email() string {
	return fmt.Sprintf("staff.%d.%04d@%s", time.Now().Unix(), rand.IntN(10000), placeholderDomain)
}

func (SynthesizedContacts) Phone() string {
	return fmt.Sprintf("000%07d", rand.IntN(10000000))
}
