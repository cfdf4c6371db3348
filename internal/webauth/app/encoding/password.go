//go:generate ${TOOLS_PATH}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "PasswordHasher=PasswordHasher"
package encoding

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}
