package tx

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedNode is returned when an affected node carries none of the
// three field sets.
var ErrMalformedNode = errors.New("malformed affected node")

// Action is what a transaction did to a ledger entry.
type Action uint8

const (
	ActionCreated Action = iota
	ActionModified
	ActionDeleted
)

func (a Action) String() string {
	switch a {
	case ActionCreated:
		return "CreatedNode"
	case ActionModified:
		return "ModifiedNode"
	case ActionDeleted:
		return "DeletedNode"
	}
	return fmt.Sprintf("Action(%d)", a)
}

// EntryType is the ledger-entry discriminant of an affected node.
type EntryType uint8

const (
	EntryOther EntryType = iota
	EntryOffer
	EntryRippleState
	EntryDirectoryNode
	EntryAccountRoot
)

// EntryTypeFromName maps a LedgerEntryType field to its EntryType.
func EntryTypeFromName(name string) EntryType {
	switch name {
	case "Offer":
		return EntryOffer
	case "RippleState":
		return EntryRippleState
	case "DirectoryNode":
		return EntryDirectoryNode
	case "AccountRoot":
		return EntryAccountRoot
	}
	return EntryOther
}

// AffectedNode is one entry of a transaction's AffectedNodes list.
type AffectedNode struct {
	Action        Action
	EntryType     EntryType
	EntryTypeName string
	LedgerIndex   string

	New      FieldSet
	Previous FieldSet
	Final    FieldSet
}

type nodeBody struct {
	LedgerEntryType string   `json:"LedgerEntryType"`
	LedgerIndex     string   `json:"LedgerIndex"`
	NewFields       FieldSet `json:"NewFields"`
	PreviousFields  FieldSet `json:"PreviousFields"`
	FinalFields     FieldSet `json:"FinalFields"`
}

func (n *AffectedNode) UnmarshalJSON(data []byte) error {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}

	var (
		raw    json.RawMessage
		action Action
		found  int
	)
	for key, value := range wrapper {
		switch key {
		case "CreatedNode":
			raw, action = value, ActionCreated
		case "ModifiedNode":
			raw, action = value, ActionModified
		case "DeletedNode":
			raw, action = value, ActionDeleted
		default:
			continue
		}
		found++
	}
	if found != 1 {
		return fmt.Errorf("%w: expected exactly one of CreatedNode, ModifiedNode, DeletedNode", ErrMalformedNode)
	}

	var body nodeBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedNode, err)
	}

	*n = AffectedNode{
		Action:        action,
		EntryType:     EntryTypeFromName(body.LedgerEntryType),
		EntryTypeName: body.LedgerEntryType,
		LedgerIndex:   body.LedgerIndex,
		New:           body.NewFields,
		Previous:      body.PreviousFields,
		Final:         body.FinalFields,
	}
	return n.Validate()
}

// Validate enforces that at least one field set is present.
func (n AffectedNode) Validate() error {
	if n.New == nil && n.Previous == nil && n.Final == nil {
		return fmt.Errorf("%w: %s %s %s has no field sets", ErrMalformedNode, n.Action, n.EntryTypeName, n.LedgerIndex)
	}
	return nil
}
