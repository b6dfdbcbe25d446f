package domain

type Connection interface {
	ID() string
	Send(data []byte) error
	Close() error
}

// Gateway owns the live connections and is the only path outbound frames take.
type Gateway interface {
	Register(conn Connection)
	Unregister(conn Connection)
	Send(connID string, data []byte)
	Count() int
}

type MessageHandler interface {
	Handle(conn Connection, data []byte)
	Disconnect(conn Connection)
}
