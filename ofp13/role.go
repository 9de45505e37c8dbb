package ofp13

import "encoding/binary"

// ControllerRole enumerates ofp_controller_role.
type ControllerRole uint32

const (
	ControllerRoleNoChange ControllerRole = 0
	ControllerRoleEqual    ControllerRole = 1
	ControllerRoleMaster   ControllerRole = 2
	ControllerRoleSlave    ControllerRole = 3
)

const roleLen = 16

// Role is the payload of RoleRequest/RoleReply. The core passes it
// through verbatim; it does not arbitrate multi-controller roles
// itself (spec.md §1 Non-goals).
type Role struct {
	Role         ControllerRole
	GenerationID uint64
}

func (Role) Len() uint16 { return roleLen }

func (r Role) MarshalBinary() ([]byte, error) {
	data := make([]byte, roleLen)
	binary.BigEndian.PutUint32(data[0:4], uint32(r.Role))
	binary.BigEndian.PutUint64(data[8:16], r.GenerationID)
	return data, nil
}

func (r *Role) UnmarshalBinary(data []byte) error {
	if len(data) != roleLen {
		return &InvalidSliceLengthError{Expected: roleLen, Actual: len(data), Kind: "Role"}
	}
	role := ControllerRole(binary.BigEndian.Uint32(data[0:4]))
	switch role {
	case ControllerRoleNoChange, ControllerRoleEqual, ControllerRoleMaster, ControllerRoleSlave:
	default:
		return &UnknownEnumError{Value: uint64(role), Kind: "Role.Role"}
	}
	r.Role = role
	r.GenerationID = binary.BigEndian.Uint64(data[8:16])
	return nil
}
