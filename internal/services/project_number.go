package services

import "strconv"

const projectNumberPrefix = "P-"

// ProjectNumber строит отображаемый номер из ключа: 7 -> "P-7".
func ProjectNumber(key uint) string {
	return projectNumberPrefix + strconv.FormatUint(uint64(key), 10)
}
