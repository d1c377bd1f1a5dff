package memory

import (
	"fmt"

	"github.com/aidul23/agent-mem/pkg/kernel"
)

// Manager addresses the banks of one company on a shared backend
type Manager struct {
	backend   Backend
	companyID kernel.CompanyID
}

func NewManager(backend Backend, companyID kernel.CompanyID) *Manager {
	return &Manager{
		backend:   backend,
		companyID: companyID,
	}
}

func (m *Manager) CompanyID() kernel.CompanyID {
	return m.companyID
}

func (m *Manager) Backend() Backend {
	return m.backend
}

// CompanyKB is the company-wide knowledge base (DFX rules, standards)
func (m *Manager) CompanyKB() *Bank {
	return NewBank(m.backend, fmt.Sprintf("company-%s-kb", m.companyID), true)
}

// ProductKB is the knowledge base of one product
func (m *Manager) ProductKB(productID string) *Bank {
	return NewBank(m.backend, fmt.Sprintf("company-%s-product-%s", m.companyID, productID), true)
}

// DepartmentKB is the knowledge base of one department
func (m *Manager) DepartmentKB(department string) *Bank {
	return NewBank(m.backend, fmt.Sprintf("company-%s-dept-%s", m.companyID, department), true)
}

// UserMemory is a user's memory inside the company. It only works with consent.
func (m *Manager) UserMemory(userID kernel.UserID, allowMemory bool) *Bank {
	return NewBank(m.backend, fmt.Sprintf("company-%s-user-%s", m.companyID, userID), allowMemory)
}

// PersonalMemory is the company-independent user bank used outside enterprise mode
func (m *Manager) PersonalMemory(userID kernel.UserID, allowMemory bool) *Bank {
	return NewBank(m.backend, fmt.Sprintf("user-%s", userID), allowMemory)
}

// ScopedKB picks the narrowest knowledge base for the given scope: product,
// then department, then the company KB.
func (m *Manager) ScopedKB(productID, department string) *Bank {
	switch {
	case productID != "":
		return m.ProductKB(productID)
	case department != "":
		return m.DepartmentKB(department)
	default:
		return m.CompanyKB()
	}
}
