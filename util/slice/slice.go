package slice

import "hash/fnv"

func FindPos[T comparable](s []T, v T) int {
	for i, sv := range s {
		if sv == v {
			return i
		}
	}
	return -1
}

func Remove[T comparable](s []T, v T) []T {
	var n int
	for _, x := range s {
		if x != v {
			s[n] = x
			n++
		}
	}
	return s[:n]
}

func Filter[T any](s []T, keep func(T) bool) []T {
	var n int
	for _, x := range s {
		if keep(x) {
			s[n] = x
			n++
		}
	}
	return s[:n]
}

func ContainsAll[T comparable](s []T, subset []T) bool {
	for _, v := range subset {
		if FindPos(s, v) == -1 {
			return false
		}
	}
	return true
}

func Hash(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
