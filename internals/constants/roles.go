package constants

import (
	"fmt"
	"sort"
)

// ==========================
// Roles
// ==========================
const (
	RoleSuperAdmin = "super-admin"
	RoleAdmin      = "admin"
	RoleClerk      = "clerk"
)

var AllRoles = []string{RoleSuperAdmin, RoleAdmin, RoleClerk}

func IsValidRole(role string) bool {
	_, ok := roleCapabilities[role]
	return ok
}

// ==========================
// Capabilities
// ==========================
type Capability string

const (
	CapManageMosques        Capability = "mosques.manage"
	CapViewAllMosques       Capability = "mosques.view_all"
	CapManageUsers          Capability = "users.manage"
	CapManageProductTypes   Capability = "product_types.manage"
	CapManageGivers         Capability = "givers.manage"
	CapManageBeneficiaries  Capability = "beneficiaries.manage"
	CapRecordCollections    Capability = "collections.record"
	CapRecordDistributions  Capability = "distributions.record"
	CapApproveDistributions Capability = "distributions.approve"
	CapViewReports          Capability = "reports.view"
	CapExportReports        Capability = "reports.export"
)

type CapabilitySet map[Capability]struct{}

func NewCapabilitySet(caps ...Capability) CapabilitySet {
	s := make(CapabilitySet, len(caps))
	for _, c := range caps {
		s[c] = struct{}{}
	}
	return s
}

func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}

// List urut alfabet (untuk response /me).
func (s CapabilitySet) List() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, string(c))
	}
	sort.Strings(out)
	return out
}

var roleCapabilities = map[string]CapabilitySet{
	RoleSuperAdmin: NewCapabilitySet(
		CapManageMosques, CapViewAllMosques, CapManageUsers, CapManageProductTypes,
		CapManageGivers, CapManageBeneficiaries, CapRecordCollections, CapRecordDistributions,
		CapApproveDistributions, CapViewReports, CapExportReports,
	),
	RoleAdmin: NewCapabilitySet(
		CapManageUsers, CapManageProductTypes,
		CapManageGivers, CapManageBeneficiaries, CapRecordCollections, CapRecordDistributions,
		CapApproveDistributions, CapViewReports, CapExportReports,
	),
	RoleClerk: NewCapabilitySet(
		CapManageGivers, CapManageBeneficiaries, CapRecordCollections,
	),
}

// Capabilities: role tidak dikenal → set kosong (bukan nil).
func Capabilities(role string) CapabilitySet {
	if s, ok := roleCapabilities[role]; ok {
		return s
	}
	return CapabilitySet{}
}

func Can(role string, c Capability) bool {
	return Capabilities(role).Has(c)
}

// ==========================
// Pesan error
// ==========================
const ErrCapabilityRequired = "❌ Role Anda tidak memiliki akses ke fitur %s."

func CapabilityError(c Capability) string {
	return fmt.Sprintf(ErrCapabilityRequired, c)
}
