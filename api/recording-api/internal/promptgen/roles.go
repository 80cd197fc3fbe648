package internal_promptgen

// AssistantRole identifies an engineering role an assistant prompt is
// generated for.
type AssistantRole string

const (
	RoleManager  AssistantRole = "manager"
	RoleFrontend AssistantRole = "frontend"
	RoleBackend  AssistantRole = "backend"
	RoleDatabase AssistantRole = "database"
	RoleUiUx     AssistantRole = "uiux"
	RoleQa       AssistantRole = "qa"
)

type RoleConfig struct {
	Label       string
	Description string
	Guidelines  string
}

var roleConfigs = map[AssistantRole]RoleConfig{
	RoleManager: {
		Label:       "Project Manager",
		Description: "Oversees project coordination, task delegation, and team alignment",
		Guidelines: `
- Project planning, timeline management, and milestone tracking
- Team coordination and task delegation strategies
- Risk assessment and mitigation planning
- Stakeholder communication and reporting
- Resource allocation and budget considerations
- Quality assurance and delivery oversight`,
	},
	RoleFrontend: {
		Label:       "Frontend Developer",
		Description: "Handles UI/UX implementation, component development, and client-side logic",
		Guidelines: `
- UI/UX implementation and component development
- Frontend architecture and state management
- Responsive design and cross-browser compatibility
- Performance optimization and code splitting
- Integration with backend APIs and services
- Testing strategies for frontend components`,
	},
	RoleBackend: {
		Label:       "Backend Developer",
		Description: "Manages server-side logic, APIs, and system architecture",
		Guidelines: `
- Server-side architecture and API design
- Database integration and data modeling
- Authentication and authorization systems
- Performance optimization and scalability
- Error handling and logging strategies
- Security best practices and implementation`,
	},
	RoleDatabase: {
		Label:       "Database Engineer",
		Description: "Designs schemas, optimizes queries, and manages data integrity",
		Guidelines: `
- Database schema design and optimization
- Query performance and indexing strategies
- Data migration and versioning approaches
- Backup and recovery procedures
- Security policies and access control
- Monitoring and maintenance best practices`,
	},
	RoleUiUx: {
		Label:       "UI/UX Designer",
		Description: "Creates user interfaces, design systems, and user experience flows",
		Guidelines: `
- User interface design and design system creation
- User experience flow and interaction design
- Accessibility compliance and inclusive design
- Prototyping and wireframing approaches
- Design tool integration and handoff processes
- User research and testing methodologies`,
	},
	RoleQa: {
		Label:       "QA Engineer",
		Description: "Ensures quality through testing, validation, and bug identification",
		Guidelines: `
- Test strategy development and implementation
- Automated testing frameworks and tools
- Bug identification, reporting, and tracking
- Performance and load testing approaches
- Security testing and vulnerability assessment
- Documentation and test case management`,
	},
}

// KnownRole reports whether role is one of the supported assistant roles.
func KnownRole(role AssistantRole) bool {
	_, ok := roleConfigs[role]
	return ok
}

// ConfigFor returns the role configuration, falling back to a generic
// entry for unknown roles.
func ConfigFor(role AssistantRole) RoleConfig {
	if cfg, ok := roleConfigs[role]; ok {
		return cfg
	}
	return RoleConfig{
		Label:       string(role),
		Description: "Provides general software development guidance",
		Guidelines:  "\n- General software development guidance",
	}
}

// Roles lists every supported assistant role.
func Roles() []AssistantRole {
	return []AssistantRole{RoleManager, RoleFrontend, RoleBackend, RoleDatabase, RoleUiUx, RoleQa}
}
