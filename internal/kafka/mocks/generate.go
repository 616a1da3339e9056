//go:generate mockgen -source=../source.go -destination=./mock_reader.go -package=mocks

package mocks
