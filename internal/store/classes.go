package store

import (
	"context"

	"pathways-backend-go/internal/models"
)

const classColumns = `id, teacher_id, name, description, code, is_active, created_at, updated_at`

const groupColumns = `id, class_id, name, description, max_size, status, project_name,
  formation_criteria, created_by, created_at, updated_at`

func (q *queries) CreateClass(ctx context.Context, class *models.Class) error {
	return q.get(ctx, class, `
INSERT INTO classes (id, teacher_id, name, description, code, is_active)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING `+classColumns,
		class.ID, class.TeacherID, class.Name, class.Description, class.Code, class.IsActive)
}

func (q *queries) GetClass(ctx context.Context, id string) (*models.Class, error) {
	var class models.Class
	if err := q.get(ctx, &class, `SELECT `+classColumns+` FROM classes WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &class, nil
}

func (q *queries) GetClassByCode(ctx context.Context, code string) (*models.Class, error) {
	var class models.Class
	if err := q.get(ctx, &class, `SELECT `+classColumns+` FROM classes WHERE code = upper($1)`, code); err != nil {
		return nil, err
	}
	return &class, nil
}

func (q *queries) ClassCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := q.get(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM classes WHERE code = upper($1))`, code)
	return exists, err
}

// ListClasses returns the classes of teacherID, or every class when it is empty.
func (q *queries) ListClasses(ctx context.Context, teacherID string) ([]models.Class, error) {
	classes := []models.Class{}
	if teacherID == "" {
		err := q.selectAll(ctx, &classes, `SELECT `+classColumns+` FROM classes ORDER BY created_at DESC`)
		return classes, err
	}
	err := q.selectAll(ctx, &classes, `
SELECT `+classColumns+` FROM classes WHERE teacher_id = $1 ORDER BY created_at DESC
`, teacherID)
	return classes, err
}

func (q *queries) UpdateClass(ctx context.Context, class *models.Class) error {
	return q.get(ctx, class, `
UPDATE classes SET name = $2, description = $3, is_active = $4, updated_at = now()
WHERE id = $1
RETURNING `+classColumns,
		class.ID, class.Name, class.Description, class.IsActive)
}

func (q *queries) EnrollStudent(ctx context.Context, classID, studentID string) error {
	return q.exec(ctx, `
INSERT INTO class_enrollments (class_id, student_id) VALUES ($1, $2)
ON CONFLICT (class_id, student_id) DO NOTHING
`, classID, studentID)
}

func (q *queries) IsEnrolled(ctx context.Context, classID, studentID string) (bool, error) {
	var enrolled bool
	err := q.get(ctx, &enrolled, `
SELECT EXISTS(SELECT 1 FROM class_enrollments WHERE class_id = $1 AND student_id = $2)
`, classID, studentID)
	return enrolled, err
}

func (q *queries) CreateGroup(ctx context.Context, group *models.Group) error {
	return q.get(ctx, group, `
INSERT INTO groups (id, class_id, name, description, max_size, status, project_name, formation_criteria, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING `+groupColumns,
		group.ID, group.ClassID, group.Name, group.Description, group.MaxSize, group.Status,
		group.ProjectName, jsonText(group.FormationCriteria, "{}"), group.CreatedBy)
}

func (q *queries) GetGroup(ctx context.Context, classID, groupID string) (*models.Group, error) {
	var group models.Group
	err := q.get(ctx, &group, `SELECT `+groupColumns+` FROM groups WHERE id = $1 AND class_id = $2`, groupID, classID)
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (q *queries) ListGroups(ctx context.Context, classID string) ([]models.Group, error) {
	groups := []models.Group{}
	err := q.selectAll(ctx, &groups, `
SELECT `+groupColumns+` FROM groups WHERE class_id = $1 ORDER BY name
`, classID)
	return groups, err
}

func (q *queries) UpdateGroup(ctx context.Context, group *models.Group) error {
	return q.get(ctx, group, `
UPDATE groups
SET name = $3, description = $4, max_size = $5, status = $6, project_name = $7,
    formation_criteria = $8, updated_at = now()
WHERE id = $1 AND class_id = $2
RETURNING `+groupColumns,
		group.ID, group.ClassID, group.Name, group.Description, group.MaxSize, group.Status,
		group.ProjectName, jsonText(group.FormationCriteria, "{}"))
}

func (q *queries) DeleteGroup(ctx context.Context, classID, groupID string) error {
	return q.execOne(ctx, `DELETE FROM groups WHERE id = $1 AND class_id = $2`, groupID, classID)
}

func (q *queries) ListGroupMembers(ctx context.Context, groupID string) ([]models.GroupMember, error) {
	members := []models.GroupMember{}
	err := q.selectAll(ctx, &members, `
SELECT gm.group_id, gm.student_id, u.first_name, u.last_name, u.email, gm.member_role, gm.joined_at
FROM group_members gm
JOIN student_profiles sp ON sp.id = gm.student_id
JOIN users u ON u.id = sp.user_id
WHERE gm.group_id = $1
ORDER BY gm.member_role DESC, u.last_name, u.first_name
`, groupID)
	return members, err
}

// AddGroupMember locks the group row so concurrent adds cannot exceed max_size.
// Callers should run it inside WithTx for the lock to span the insert.
func (q *queries) AddGroupMember(ctx context.Context, groupID, studentID, role string) error {
	var maxSize int
	if err := q.get(ctx, &maxSize, `SELECT max_size FROM groups WHERE id = $1 FOR UPDATE`, groupID); err != nil {
		return err
	}
	var count int
	if err := q.get(ctx, &count, `SELECT COUNT(*) FROM group_members WHERE group_id = $1`, groupID); err != nil {
		return err
	}
	if count >= maxSize {
		return ErrGroupFull
	}
	return q.exec(ctx, `
INSERT INTO group_members (group_id, student_id, member_role) VALUES ($1, $2, $3)
`, groupID, studentID, role)
}

func (q *queries) RemoveGroupMember(ctx context.Context, groupID, studentID string) error {
	return q.execOne(ctx, `DELETE FROM group_members WHERE group_id = $1 AND student_id = $2`, groupID, studentID)
}

func (q *queries) ListStudentGroups(ctx context.Context, studentID string) ([]models.Group, error) {
	groups := []models.Group{}
	err := q.selectAll(ctx, &groups, `
SELECT g.id, g.class_id, g.name, g.description, g.max_size, g.status, g.project_name,
  g.formation_criteria, g.created_by, g.created_at, g.updated_at
FROM groups g
JOIN group_members gm ON gm.group_id = g.id
WHERE gm.student_id = $1
ORDER BY g.name
`, studentID)
	return groups, err
}
