// ABOUTME: Mock Store implementation for testing
// ABOUTME: In-memory maps plus per-method error injection for fail-closed tests

package store

import (
	"context"
	"sort"
	"sync"
)

// MockStore is an in-memory Store implementation for testing. FailWith lets
// tests force an error from a named method to exercise fail-closed paths.
type MockStore struct {
	mu          sync.RWMutex
	departments map[string]*Department
	agents      map[string]*Agent
	operators   map[string]*Operator
	contents    map[string][]*Content  // keyed by agentID
	categories  map[string][]*Category // keyed by agentID
	failures    map[string]error       // method name -> injected error
}

// NewMockStore creates a new MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		departments: make(map[string]*Department),
		agents:      make(map[string]*Agent),
		operators:   make(map[string]*Operator),
		contents:    make(map[string][]*Content),
		categories:  make(map[string][]*Category),
		failures:    make(map[string]error),
	}
}

// FailWith makes the named method return err on every call until cleared
// with a nil err.
func (m *MockStore) FailWith(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, method)
		return
	}
	m.failures[method] = err
}

func (m *MockStore) injected(method string) error {
	return m.failures[method]
}

// CreateDepartment stores a new department.
func (m *MockStore) CreateDepartment(ctx context.Context, d *Department) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected("CreateDepartment"); err != nil {
		return err
	}
	for _, existing := range m.departments {
		if existing.Code == d.Code {
			return ErrDuplicateCode
		}
	}

	copied := *d
	m.departments[copied.ID] = &copied
	return nil
}

// GetDepartment retrieves a department by ID.
func (m *MockStore) GetDepartment(ctx context.Context, id string) (*Department, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.injected("GetDepartment"); err != nil {
		return nil, err
	}
	d, ok := m.departments[id]
	if !ok {
		return nil, ErrNotFound
	}

	result := *d
	return &result, nil
}

// GetDepartmentByCode retrieves a department by its unique code.
func (m *MockStore) GetDepartmentByCode(ctx context.Context, code string) (*Department, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.injected("GetDepartmentByCode"); err != nil {
		return nil, err
	}
	for _, d := range m.departments {
		if d.Code == code {
			result := *d
			return &result, nil
		}
	}
	return nil, ErrNotFound
}

// UpdateDepartment updates an existing department.
func (m *MockStore) UpdateDepartment(ctx context.Context, d *Department) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected("UpdateDepartment"); err != nil {
		return err
	}
	if _, ok := m.departments[d.ID]; !ok {
		return ErrNotFound
	}
	for _, existing := range m.departments {
		if existing.ID != d.ID && existing.Code == d.Code {
			return ErrDuplicateCode
		}
	}

	copied := *d
	m.departments[copied.ID] = &copied
	return nil
}

// DeactivateDepartment flips a department inactive.
func (m *MockStore) DeactivateDepartment(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected("DeactivateDepartment"); err != nil {
		return err
	}
	d, ok := m.departments[id]
	if !ok {
		return ErrNotFound
	}
	d.Active = false
	return nil
}

// ListDepartments returns departments matching the filter, ordered by code.
func (m *MockStore) ListDepartments(ctx context.Context, filter DepartmentFilter) ([]*Department, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.injected("ListDepartments"); err != nil {
		return nil, err
	}

	departments := []*Department{}
	for _, d := range m.departments {
		if filter.Active != nil && d.Active != *filter.Active {
			continue
		}
		result := *d
		departments = append(departments, &result)
	}

	sort.Slice(departments, func(i, j int) bool {
		return departments[i].Code < departments[j].Code
	})
	return departments, nil
}

// CreateAgent stores a new agent, enforcing the one-agent-per-department rule
// the way the SQLite partial unique index does.
func (m *MockStore) CreateAgent(ctx context.Context, a *Agent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected("CreateAgent"); err != nil {
		return err
	}
	if a.DepartmentID != "" && a.Active && !a.Deleted {
		for _, existing := range m.agents {
			if existing.DepartmentID == a.DepartmentID && existing.Active && !existing.Deleted {
				return ErrDepartmentTaken
			}
		}
	}

	copied := *a
	m.agents[copied.ID] = &copied
	return nil
}

// GetAgent retrieves an agent by ID.
func (m *MockStore) GetAgent(ctx context.Context, id string) (*Agent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.injected("GetAgent"); err != nil {
		return nil, err
	}
	a, ok := m.agents[id]
	if !ok {
		return nil, ErrNotFound
	}

	result := *a
	return &result, nil
}

// UpdateAgent updates an existing agent.
func (m *MockStore) UpdateAgent(ctx context.Context, a *Agent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected("UpdateAgent"); err != nil {
		return err
	}
	if _, ok := m.agents[a.ID]; !ok {
		return ErrNotFound
	}
	if a.DepartmentID != "" && a.Active && !a.Deleted {
		for _, existing := range m.agents {
			if existing.ID != a.ID && existing.DepartmentID == a.DepartmentID &&
				existing.Active && !existing.Deleted {
				return ErrDepartmentTaken
			}
		}
	}

	copied := *a
	m.agents[copied.ID] = &copied
	return nil
}

// DeleteAgent removes an agent permanently.
func (m *MockStore) DeleteAgent(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected("DeleteAgent"); err != nil {
		return err
	}
	if _, ok := m.agents[id]; !ok {
		return ErrNotFound
	}
	delete(m.agents, id)
	return nil
}

// ListAgents returns agents matching the filter, ordered by name.
func (m *MockStore) ListAgents(ctx context.Context, filter AgentFilter) ([]*Agent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.injected("ListAgents"); err != nil {
		return nil, err
	}

	agents := []*Agent{}
	for _, a := range m.agents {
		if filter.Active != nil && a.Active != *filter.Active {
			continue
		}
		if filter.Deleted != nil && a.Deleted != *filter.Deleted {
			continue
		}
		if filter.DepartmentID != "" && a.DepartmentID != filter.DepartmentID {
			continue
		}
		result := *a
		agents = append(agents, &result)
	}

	sort.Slice(agents, func(i, j int) bool {
		return agents[i].Name < agents[j].Name
	})
	return agents, nil
}

// CreateOperator stores a new operator.
func (m *MockStore) CreateOperator(ctx context.Context, op *Operator) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected("CreateOperator"); err != nil {
		return err
	}
	for _, existing := range m.operators {
		if existing.Username == op.Username {
			return ErrDuplicateUsername
		}
	}

	copied := *op
	m.operators[copied.ID] = &copied
	return nil
}

// GetOperatorByUsername retrieves an operator by username.
func (m *MockStore) GetOperatorByUsername(ctx context.Context, username string) (*Operator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.injected("GetOperatorByUsername"); err != nil {
		return nil, err
	}
	for _, op := range m.operators {
		if op.Username == username {
			result := *op
			return &result, nil
		}
	}
	return nil, ErrNotFound
}

// ListOperatorsByDepartment returns operators referencing a department.
func (m *MockStore) ListOperatorsByDepartment(ctx context.Context, departmentID string) ([]*Operator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.injected("ListOperatorsByDepartment"); err != nil {
		return nil, err
	}

	operators := []*Operator{}
	for _, op := range m.operators {
		if op.DepartmentID == departmentID {
			result := *op
			operators = append(operators, &result)
		}
	}

	sort.Slice(operators, func(i, j int) bool {
		return operators[i].Username < operators[j].Username
	})
	return operators, nil
}

// CreateContent stores a content item.
func (m *MockStore) CreateContent(ctx context.Context, c *Content) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected("CreateContent"); err != nil {
		return err
	}
	copied := *c
	m.contents[c.AgentID] = append(m.contents[c.AgentID], &copied)
	return nil
}

// ListContentsByAgent returns contents referencing an agent.
func (m *MockStore) ListContentsByAgent(ctx context.Context, agentID string) ([]*Content, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.injected("ListContentsByAgent"); err != nil {
		return nil, err
	}

	contents := []*Content{}
	for _, c := range m.contents[agentID] {
		result := *c
		contents = append(contents, &result)
	}
	return contents, nil
}

// CreateCategory stores a category.
func (m *MockStore) CreateCategory(ctx context.Context, c *Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.injected("CreateCategory"); err != nil {
		return err
	}
	copied := *c
	m.categories[c.AgentID] = append(m.categories[c.AgentID], &copied)
	return nil
}

// ListCategoriesByAgent returns categories referencing an agent.
func (m *MockStore) ListCategoriesByAgent(ctx context.Context, agentID string) ([]*Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.injected("ListCategoriesByAgent"); err != nil {
		return nil, err
	}

	categories := []*Category{}
	for _, c := range m.categories[agentID] {
		result := *c
		categories = append(categories, &result)
	}
	return categories, nil
}

// Close is a no-op for the mock store.
func (m *MockStore) Close() error {
	return nil
}
