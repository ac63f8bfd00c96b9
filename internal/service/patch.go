package service

import (
	"github.com/wictors/BackendAssignment-Fitness/internal/entity"

	"github.com/google/uuid"
)

// Patches carry the optional fields of a partial update. Apply copies onto
// the loaded entity only the fields that were supplied and actually differ,
// and reports whether anything changed, so callers can skip the write (and
// the "updated" response) when a client resends identical data.

type ExercisePatch struct {
	Name       *string
	Difficulty *entity.ExerciseDifficulty
	ProgramID  *uuid.UUID
}

func (p ExercisePatch) Empty() bool {
	return p.Name == nil && p.Difficulty == nil && p.ProgramID == nil
}

func (p ExercisePatch) Apply(exercise *entity.Exercise) bool {
	changed := false
	if p.Name != nil && exercise.Name != *p.Name {
		exercise.Name = *p.Name
		changed = true
	}
	if p.Difficulty != nil && exercise.Difficulty != *p.Difficulty {
		exercise.Difficulty = *p.Difficulty
		changed = true
	}
	if p.ProgramID != nil && exercise.ProgramID != *p.ProgramID {
		exercise.ProgramID = *p.ProgramID
		exercise.Program = nil
		changed = true
	}
	return changed
}

type UserPatch struct {
	Name     *string
	Surname  *string
	NickName *string
	Age      *int
	Role     *entity.UserRole
}

func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Surname == nil && p.NickName == nil && p.Age == nil && p.Role == nil
}

func (p UserPatch) Apply(user *entity.User) bool {
	changed := false
	if p.Name != nil && user.Name != *p.Name {
		user.Name = *p.Name
		changed = true
	}
	if p.Surname != nil && user.Surname != *p.Surname {
		user.Surname = *p.Surname
		changed = true
	}
	if p.NickName != nil && user.NickName != *p.NickName {
		user.NickName = *p.NickName
		changed = true
	}
	if p.Age != nil && user.Age != *p.Age {
		user.Age = *p.Age
		changed = true
	}
	if p.Role != nil && user.Role != *p.Role {
		user.Role = *p.Role
		changed = true
	}
	return changed
}
