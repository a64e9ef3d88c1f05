package securid

import (
	"crypto/rand"
	"encoding/hex"
)

// MinPin and MaxPin bound the accepted PIN length.
const (
	MinPin = 4
	MaxPin = 8
)

// PinFormatOK reports whether pin is an acceptable PIN: MinPin-MaxPin
// decimal digits.
func PinFormatOK(pin string) error {
	const op = "PinFormatOK"

	if len(pin) < MinPin || len(pin) > MaxPin {
		return newError(op, ErrBadLen)
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return newError(op, ErrGeneral)
		}
	}
	return nil
}

// EncryptPIN encrypts pin under a key derived from password (the empty
// string is a valid password, hashing 0 bytes) and returns it as a
// 64-character hex string: a random 16-byte IV followed by the
// CBC-style-masked, AES-ECB-encrypted PIN block. Use DecryptPIN with the
// same password to recover pin.
func EncryptPIN(pin, password string) (string, error) {
	const op = "EncryptPIN"

	if err := PinFormatOK(pin); err != nil {
		return "", err
	}

	var buf [aesBlockSize]byte
	copy(buf[:], pin)
	buf[aesBlockSize-1] = byte(len(pin))

	passHash := macHash([]byte(password))

	var iv [aesBlockSize]byte
	if _, err := rand.Read(iv[:]); err != nil {
		return "", newError(op, ErrGeneral)
	}

	for i := range buf {
		buf[i] ^= iv[i]
	}
	enc := aesECBEncrypt(passHash[:], buf[:])

	out := make([]byte, 0, aesBlockSize*2*2)
	out = append(out, []byte(hex.EncodeToString(iv[:]))...)
	out = append(out, []byte(hex.EncodeToString(enc))...)

	wipe(passHash[:])
	return string(out), nil
}

// DecryptPIN reverses EncryptPIN, returning the original PIN or
// ErrBadLen/ErrGeneral if encPin is malformed or password is wrong.
func DecryptPIN(encPin, password string) (string, error) {
	const op = "DecryptPIN"

	if len(encPin) != aesBlockSize*2*2 {
		return "", newError(op, ErrBadLen)
	}

	raw, err := hex.DecodeString(encPin)
	if err != nil {
		return "", newError(op, ErrBadLen)
	}
	iv := raw[:aesBlockSize]
	encBuf := raw[aesBlockSize:]

	passHash := macHash([]byte(password))
	buf := aesECBDecrypt(passHash[:], encBuf)
	wipe(passHash[:])

	for i := range buf {
		buf[i] ^= iv[i]
	}

	// The reference checks buf[15] == strlen(buf): the length byte must
	// equal the position of the first NUL in the decrypted block, not just
	// be some in-range value. firstNUL below finds that position directly.
	firstNUL := aesBlockSize - 1
	for i, b := range buf[:aesBlockSize-1] {
		if b == 0 {
			firstNUL = i
			break
		}
	}
	n := int(buf[aesBlockSize-1])
	if n != firstNUL {
		return "", newError(op, ErrGeneral)
	}
	pin := string(buf[:n])
	if err := PinFormatOK(pin); err != nil {
		return "", newError(op, ErrGeneral)
	}
	return pin, nil
}
