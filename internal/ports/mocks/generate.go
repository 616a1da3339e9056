//go:generate mockgen -source=../message_source.go -destination=./mock_message_source.go -package=mocks
//go:generate mockgen -source=../subscription.go   -destination=./mock_subscription.go   -package=mocks
//go:generate mockgen -source=../cleaner.go        -destination=./mock_cleaner.go        -package=mocks
//go:generate mockgen -source=../logger.go         -destination=./mock_logger.go         -package=mocks
//go:generate mockgen -source=../archive_repository.go -destination=./mock_archive_repository.go -package=mocks
//go:generate mockgen -source=../delivery_cache.go -destination=./mock_delivery_cache.go -package=mocks

package mocks
