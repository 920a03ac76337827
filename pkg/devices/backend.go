package devices

import (
	"database/sql"
)

type Device struct {
	ID    int
	Token string
}

type Backend struct {
	db *sql.DB
}

func NewBackend(db *sql.DB) *Backend {
	return &Backend{
		db: db,
	}
}

func (b *Backend) AddDeviceForUser(id int, token string) error {
	stmt, err := b.db.Prepare("INSERT INTO devices (token, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING;")
	if err != nil {
		return err
	}

	_, err = stmt.Exec(token, id)
	return err
}

func (b *Backend) RemoveDevice(token string) error {
	stmt, err := b.db.Prepare("DELETE FROM devices WHERE token = $1;")
	if err != nil {
		return err
	}

	_, err = stmt.Exec(token)
	return err
}

func (b *Backend) GetDevicesForUser(id int) ([]Device, error) {
	stmt, err := b.db.Prepare("SELECT user_id, token FROM devices WHERE user_id = $1;")
	if err != nil {
		return nil, err
	}

	return b.executeFetchDevicesQuery(stmt, id)
}

// FetchAllFriendDevices returns the devices of everyone mutually following the
// user, the audience for new story pushes.
func (b *Backend) FetchAllFriendDevices(id int) ([]Device, error) {
	stmt, err := b.db.Prepare(`SELECT devices.user_id AS id, devices.token FROM devices WHERE devices.user_id IN (
		SELECT user_id AS id FROM followers WHERE follower = $1
		INTERSECT
		SELECT follower AS id FROM followers WHERE user_id = $1
	);`)
	if err != nil {
		return nil, err
	}

	return b.executeFetchDevicesQuery(stmt, id)
}

func (b *Backend) executeFetchDevicesQuery(stmt *sql.Stmt, args ...interface{}) ([]Device, error) {
	rows, err := stmt.Query(args...)
	if err != nil {
		return nil, err
	}

	result := make([]Device, 0)

	for rows.Next() {
		device := Device{}

		err := rows.Scan(&device.ID, &device.Token)
		if err != nil {
			continue
		}

		result = append(result, device)
	}

	return result, nil
}
