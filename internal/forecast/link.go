package forecast

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Link ties a project forecast to exactly one owner: an agency or a prospect.
type Link interface {
	isLink()
}

// AgencyLink is a project forecast for a contracted agency. It is subject to invoice gating.
type AgencyLink struct {
	AgencyID AgencyID
}

// ProspectLink is a project forecast for a not-yet-contracted client. It is never gated.
type ProspectLink struct {
	Name string
}

func (AgencyLink) isLink()   {}
func (ProspectLink) isLink() {}

// ResolveLink builds a Link from the two nullable columns a collaborator stores.
// When both are set the agency wins; when neither is set the item is bucketed under Unassigned.
// Both cases return a warning so the caller can surface the bad row.
func ResolveLink(id uuid.UUID, agencyID, prospectName string) (Link, *Diagnostic) {
	agencyID = strings.TrimSpace(agencyID)
	prospectName = strings.TrimSpace(prospectName)

	switch {
	case agencyID != "" && prospectName != "":
		return AgencyLink{AgencyID: AgencyID(agencyID)}, &Diagnostic{
			Level:    LevelWarning,
			Code:     CodeLinkBothSet,
			Message:  fmt.Sprintf("project forecast has agency %q and prospect %q; using agency", agencyID, prospectName),
			RecordID: id,
		}
	case agencyID != "":
		return AgencyLink{AgencyID: AgencyID(agencyID)}, nil
	case prospectName != "":
		return ProspectLink{Name: prospectName}, nil
	}

	return AgencyLink{AgencyID: Unassigned}, &Diagnostic{
		Level:    LevelWarning,
		Code:     CodeLinkMissing,
		Message:  "project forecast has neither agency nor prospect; using " + string(Unassigned),
		RecordID: id,
	}
}
