package store

const (
	createUser = `INSERT INTO users (email, name, password_hash)
    VALUES ($1, $2, $3)
    RETURNING user_id, email, name, password_hash, created_at, updated_at;`

	updateUser = `UPDATE users
    SET email = $2, name = $3, password_hash = $4, updated_at = now()
    WHERE user_id = $1
    RETURNING user_id, email, name, password_hash, created_at, updated_at;`

	findUserByID = `SELECT user_id, email, name, password_hash, created_at, updated_at
    FROM users
    WHERE user_id = $1;`

	findUserByEmail = `SELECT user_id, email, name, password_hash, created_at, updated_at
    FROM users
    WHERE email = $1;`

	findAllUsers = `SELECT user_id, email, name, password_hash, created_at, updated_at
    FROM users
    ORDER BY user_id;`

	deleteUser = `DELETE FROM users
    WHERE user_id = $1;`
)
