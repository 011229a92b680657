// Package flow implements the multi-step conversations of the bot as an explicit
// step enum with a transition table. It knows nothing about Telegram: handlers feed
// it text and read back the collected values.
package flow

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

type Flow string

const (
	None           Flow = ""
	Order          Flow = "order"
	AdminEvent     Flow = "admin_event"
	AdminDeny      Flow = "admin_deny"
	AdminRevert    Flow = "admin_revert"
	AdminAddClient Flow = "admin_add_client"
)

type Step int

const (
	StepNone Step = iota
	StepFullName
	StepInstitution
	StepPromo
	StepConfirm
	StepAgeConfirm
	StepEventDate
	StepEventPrice
	StepDenyName
	StepRevertName
	StepClientName
	StepClientInstitution
	StepClientUsername
	StepClientAmount
	StepDone
)

var stepNames = map[Step]string{
	StepNone:              "none",
	StepFullName:          "full_name",
	StepInstitution:       "institution",
	StepPromo:             "promo_code",
	StepConfirm:           "confirm",
	StepAgeConfirm:        "age_confirmation",
	StepEventDate:         "event_date",
	StepEventPrice:        "event_price",
	StepDenyName:          "deny_name",
	StepRevertName:        "revert_name",
	StepClientName:        "client_full_name",
	StepClientInstitution: "client_institution",
	StepClientUsername:    "client_username",
	StepClientAmount:      "client_amount",
	StepDone:              "done",
}

func (s Step) String() string {
	if n, ok := stepNames[s]; ok {
		return n
	}
	return "step(" + strconv.Itoa(int(s)) + ")"
}

// Keys under which collected answers are stored in Session.Data.
const (
	KeyFullName    = "full_name"
	KeyInstitution = "institution"
	KeyPromo       = "promo_code"
	KeyDate        = "date"
	KeyPrice       = "price"
	KeyUsername    = "username"
	KeyAmount      = "amount"
	KeyName        = "name"
)

const (
	MaxNameWordLen    = 15
	NameWords         = 3
	MaxInstitutionLen = 25
)

var (
	ErrBadFullName    = errors.New("full name must be three words of at most 15 characters")
	ErrBadInstitution = errors.New("institution must be 1 to 25 characters")
	ErrBadNumber      = errors.New("value must be a non-negative integer")
	ErrEmpty          = errors.New("value is empty")
	ErrNotTextStep    = errors.New("step expects a button press")
	ErrNoFlow         = errors.New("no active flow")
)

var firstStep = map[Flow]Step{
	Order:          StepFullName,
	AdminEvent:     StepEventDate,
	AdminDeny:      StepDenyName,
	AdminRevert:    StepRevertName,
	AdminAddClient: StepClientName,
}

var transitions = map[Flow]map[Step]Step{
	Order: {
		StepFullName:    StepInstitution,
		StepInstitution: StepPromo,
		StepPromo:       StepConfirm,
		StepConfirm:     StepAgeConfirm,
		StepAgeConfirm:  StepDone,
	},
	AdminEvent: {
		StepEventDate:  StepEventPrice,
		StepEventPrice: StepDone,
	},
	AdminDeny: {
		StepDenyName: StepDone,
	},
	AdminRevert: {
		StepRevertName: StepDone,
	},
	AdminAddClient: {
		StepClientName:        StepClientInstitution,
		StepClientInstitution: StepClientUsername,
		StepClientUsername:    StepClientAmount,
		StepClientAmount:      StepDone,
	},
}

type field struct {
	key      string
	validate func(string) (string, error)
}

// Steps absent from this table are driven by buttons, not text.
var fields = map[Step]field{
	StepFullName:          {KeyFullName, ValidateFullName},
	StepInstitution:       {KeyInstitution, ValidateInstitution},
	StepPromo:             {KeyPromo, normalizePromo},
	StepEventDate:         {KeyDate, nonEmpty},
	StepEventPrice:        {KeyPrice, ValidateNumber},
	StepDenyName:          {KeyName, nonEmpty},
	StepRevertName:        {KeyName, nonEmpty},
	StepClientName:        {KeyFullName, ValidateFullName},
	StepClientInstitution: {KeyInstitution, ValidateInstitution},
	StepClientUsername:    {KeyUsername, NormalizeUsername},
	StepClientAmount:      {KeyAmount, ValidateNumber},
}

// Next returns the step following s in flow f, or StepDone when s is last or unknown.
func Next(f Flow, s Step) Step {
	if next, ok := transitions[f][s]; ok {
		return next
	}
	return StepDone
}

// Session is the transient per-user state of one conversation.
type Session struct {
	Flow Flow
	Step Step
	Data map[string]string
}

func Start(f Flow) Session {
	return Session{Flow: f, Step: firstStep[f], Data: map[string]string{}}
}

func (s Session) Active() bool { return s.Flow != None }

func (s Session) Done() bool { return s.Step == StepDone }

func (s Session) Value(key string) string {
	if s.Data == nil {
		return ""
	}
	return s.Data[key]
}

// ExpectsText reports whether the current step is answered with a text message.
func (s Session) ExpectsText() bool {
	_, ok := fields[s.Step]
	return ok
}

// Apply validates input for the current step, stores it and advances.
// On error the returned session equals the receiver.
func (s Session) Apply(input string) (Session, error) {
	if !s.Active() {
		return s, ErrNoFlow
	}
	f, ok := fields[s.Step]
	if !ok {
		return s, ErrNotTextStep
	}
	v, err := f.validate(input)
	if err != nil {
		return s, err
	}
	out := s.clone()
	out.Data[f.key] = v
	out.Step = Next(s.Flow, s.Step)
	return out, nil
}

// Advance moves past a button-driven step.
func (s Session) Advance() Session {
	out := s.clone()
	out.Step = Next(s.Flow, s.Step)
	return out
}

// Jump rewinds the order flow to a text step so the user can re-enter a field.
// Subsequent steps are walked again in order.
func (s Session) Jump(to Step) (Session, error) {
	if _, ok := transitions[s.Flow][to]; !ok {
		return s, ErrNotTextStep
	}
	if _, ok := fields[to]; !ok {
		return s, ErrNotTextStep
	}
	out := s.clone()
	out.Step = to
	return out, nil
}

func (s Session) clone() Session {
	out := Session{Flow: s.Flow, Step: s.Step, Data: make(map[string]string, len(s.Data)+1)}
	for k, v := range s.Data {
		out.Data[k] = v
	}
	return out
}

func ValidateFullName(in string) (string, error) {
	name := strings.TrimSpace(in)
	words := strings.Fields(name)
	if len(words) != NameWords {
		return "", ErrBadFullName
	}
	for _, w := range words {
		if utf8.RuneCountInString(w) > MaxNameWordLen {
			return "", ErrBadFullName
		}
	}
	return name, nil
}

func ValidateInstitution(in string) (string, error) {
	v := strings.TrimSpace(in)
	if v == "" || utf8.RuneCountInString(v) > MaxInstitutionLen {
		return "", ErrBadInstitution
	}
	return v, nil
}

func ValidateNumber(in string) (string, error) {
	v := strings.TrimSpace(in)
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return "", ErrBadNumber
	}
	return strconv.Itoa(n), nil
}

func NormalizeUsername(in string) (string, error) {
	v := strings.TrimPrefix(strings.TrimSpace(in), "@")
	if v == "" {
		return "", ErrEmpty
	}
	return v, nil
}

func nonEmpty(in string) (string, error) {
	v := strings.TrimSpace(in)
	if v == "" {
		return "", ErrEmpty
	}
	return v, nil
}

func normalizePromo(in string) (string, error) {
	return strings.ToUpper(strings.TrimSpace(in)), nil
}

// Quote is the price after a flat discount, never below zero.
func Quote(price, discount int) int {
	if discount >= price {
		return 0
	}
	return price - discount
}
