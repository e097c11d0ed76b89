package services

import "errors"

// Service errors carry the snake_case reason codes the API exposes in its
// message field, so handlers map them straight onto responses.
var (
	ErrUserNotFound         = errors.New("not_found_user")
	ErrUserNotFoundByEmail  = errors.New("not_found_user_by_email")
	ErrRoomNotFound         = errors.New("not_found_room")
	ErrEmailTaken           = errors.New("already_registered_email")
	ErrNickNameTaken        = errors.New("already_registered_nickName")
	ErrInvalidPassword      = errors.New("invalid_password")
	ErrWrongCurrentPassword = errors.New("wrong_current_password")
	ErrPasswordReused       = errors.New("new_password_is_the_same_current_password")
	ErrNotRoomOwner         = errors.New("not_room_owner")
	ErrRoomWithoutUsers     = errors.New("room_without_users")
	ErrIncorrectLevel       = errors.New("incorrect_level_enum")
	ErrOtherPlayerNotFound  = errors.New("other_player_not_found")
)
