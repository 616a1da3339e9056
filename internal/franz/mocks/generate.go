//go:generate mockgen -source=../source.go -destination=./mock_client.go -package=mocks

package mocks
