package ports

// Cleaner — периодическая уборка после каждого диспетчеризованного сообщения.
type Cleaner interface {
	CleanUp()
}
