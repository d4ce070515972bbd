// Package policy is the single place where access rules live. Every course,
// enrollment and grade operation asks Decide before touching state; the
// services never re-implement role or ownership checks inline.
package policy

import (
	"github.com/eakyurek/gradehub/internal/app/models"
)

// Action enumerates the operations the engine can rule on.
type Action string

const (
	ActionCreateCourse        Action = "course:create"
	ActionReadCourse          Action = "course:read"
	ActionUpdateCourse        Action = "course:update"
	ActionDeleteCourse        Action = "course:delete"
	ActionEnroll              Action = "enrollment:enroll"
	ActionUnenroll            Action = "enrollment:unenroll"
	ActionAssignGrade         Action = "grade:assign"
	ActionReadGradesOfStudent Action = "grade:read-by-student"
	ActionReadGradesOfCourse  Action = "grade:read-by-course"
	ActionDeleteGrade         Action = "grade:delete"
)

// Principal is the authenticated identity making the request.
type Principal struct {
	ID   int64
	Role models.RoleType
}

// Resource carries the relationship facts an action needs. Fields that do
// not apply to an action are left at their zero value.
type Resource struct {
	// CourseOwnerID is the owning professor of the course being acted on.
	// For CreateCourse it is the professor named in the request.
	CourseOwnerID int64
	// StudentID is the named student target (enroll/unenroll target,
	// grade subject, transcript owner).
	StudentID int64
	// PrincipalEnrolled reports whether the principal is currently a member
	// of the course's enrolled set. Only consulted for ReadGradesOfCourse.
	PrincipalEnrolled bool
}

// Decision is the engine's verdict.
type Decision struct {
	Allowed bool
	// SelfOnly narrows a permitted result set to rows belonging to the
	// principal. Set only for enrolled students reading course grades:
	// same endpoint, result filtered by identity rather than a separate
	// action.
	SelfOnly bool
}

func deny() Decision           { return Decision{} }
func permit() Decision         { return Decision{Allowed: true} }
func permitSelfOnly() Decision { return Decision{Allowed: true, SelfOnly: true} }

// rule maps a (principal, resource) pair to a verdict for one action.
type rule func(p Principal, r Resource) Decision

// rules is the decision table. One entry per action; each entry encodes the
// whole role x relationship row so the rules cannot drift apart across
// handlers.
var rules = map[Action]rule{
	ActionCreateCourse: func(p Principal, r Resource) Decision {
		switch p.Role {
		case models.RoleAdmin:
			return permit()
		case models.RoleProfessor:
			// A professor may only create courses for themself.
			if r.CourseOwnerID == p.ID {
				return permit()
			}
		}
		return deny()
	},

	ActionReadCourse: func(p Principal, r Resource) Decision {
		// Course listings are visible to every authenticated role.
		if p.Role.Valid() {
			return permit()
		}
		return deny()
	},

	ActionUpdateCourse: ownerOrAdmin,
	ActionDeleteCourse: ownerOrAdmin,

	ActionEnroll:   selfStudent,
	ActionUnenroll: selfStudent,

	ActionAssignGrade: ownerOrAdmin,

	ActionReadGradesOfStudent: func(p Principal, r Resource) Decision {
		switch p.Role {
		case models.RoleAdmin:
			return permit()
		case models.RoleStudent:
			// A student may read their own transcript only. Professors are
			// denied entirely: course-scoped visibility goes through
			// ReadGradesOfCourse instead.
			if p.ID == r.StudentID {
				return permit()
			}
		}
		return deny()
	},

	ActionReadGradesOfCourse: func(p Principal, r Resource) Decision {
		switch p.Role {
		case models.RoleAdmin:
			return permit()
		case models.RoleProfessor:
			if p.ID == r.CourseOwnerID {
				return permit()
			}
		case models.RoleStudent:
			if r.PrincipalEnrolled {
				return permitSelfOnly()
			}
		}
		return deny()
	},

	ActionDeleteGrade: ownerOrAdmin,
}

// ownerOrAdmin permits admins and the course's owning professor.
func ownerOrAdmin(p Principal, r Resource) Decision {
	switch p.Role {
	case models.RoleAdmin:
		return permit()
	case models.RoleProfessor:
		if p.ID == r.CourseOwnerID {
			return permit()
		}
	}
	return deny()
}

// selfStudent permits a student acting on their own membership. There is no
// admin or professor branch: nobody enrolls on a student's behalf.
func selfStudent(p Principal, r Resource) Decision {
	if p.Role == models.RoleStudent && p.ID == r.StudentID {
		return permit()
	}
	return deny()
}

// Decide is the pure decision function. Unknown actions and unknown roles
// are denied.
func Decide(p Principal, action Action, r Resource) Decision {
	rl, ok := rules[action]
	if !ok {
		return deny()
	}
	return rl(p, r)
}
