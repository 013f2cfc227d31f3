package content

import (
	"fmt"
	"math"
)

// GenFunc produces one problem from the engine's seeded stream.
type GenFunc func(r *Rand) Problem

func simpleAddition(min, max, sumLimit int) GenFunc {
	return func(r *Rand) Problem {
		minSum := min + min
		maxSum := max + max
		if sumLimit < maxSum {
			maxSum = sumLimit
		}
		target := r.Between(minSum, maxSum)
		minA := min
		if target-max > minA {
			minA = target - max
		}
		maxA := max
		if target-min < maxA {
			maxA = target - min
		}
		a := r.Between(minA, maxA)
		b := target - a
		if b < min || b > max {
			if b < min {
				b = min
			} else if b > max {
				b = max
			}
			a = target - b
		}
		return Problem{A: itoa(a), B: itoa(b), Answer: itoa(a + b)}
	}
}

func mixedAddition(min1, max1, min2, max2 int) GenFunc {
	return func(r *Rand) Problem {
		a := r.Between(min1, max1)
		b := r.Between(min2, max2)
		return Problem{A: itoa(a), B: itoa(b), Answer: itoa(a + b)}
	}
}

func simpleSubtraction(min, max int) GenFunc {
	return func(r *Rand) Problem {
		a := r.Between(min, max)
		b := r.IntN(a) + 1
		return Problem{A: itoa(a), B: itoa(b), Answer: itoa(a - b)}
	}
}

func mixedSubtraction(min1, max1, min2, max2 int) GenFunc {
	return func(r *Rand) Problem {
		a := r.Between(min1, max1)
		b := r.Between(min2, max2)
		if b > a {
			a, b = b, a
		}
		return Problem{A: itoa(a), B: itoa(b), Answer: itoa(a - b)}
	}
}

func multiplication(multipliers []int, minM, maxM int) GenFunc {
	return func(r *Rand) Problem {
		mult := multipliers[r.IntN(len(multipliers))]
		m := r.Between(minM, maxM)
		return Problem{A: itoa(m), B: itoa(mult), Answer: itoa(m * mult)}
	}
}

func advancedMultiplication(min1, max1, min2, max2 int) GenFunc {
	return func(r *Rand) Problem {
		a := r.Between(min1, max1)
		b := r.Between(min2, max2)
		return Problem{A: itoa(a), B: itoa(b), Answer: itoa(a * b)}
	}
}

func division(divisors []int, minQ, maxQ int) GenFunc {
	return func(r *Rand) Problem {
		d := divisors[r.IntN(len(divisors))]
		q := r.Between(minQ, maxQ)
		return Problem{A: itoa(d * q), B: itoa(d), Answer: itoa(q)}
	}
}

func advancedDivision(min, max, minDiv, maxDiv int, withRemainder bool) GenFunc {
	return func(r *Rand) Problem {
		d := r.Between(minDiv, maxDiv)
		if withRemainder {
			dividend := r.Between(min, max)
			q := dividend / d
			rem := dividend % d
			ans := itoa(q)
			if rem > 0 {
				ans = fmt.Sprintf("%d r %d", q, rem)
			}
			return Problem{A: itoa(dividend), B: itoa(d), Answer: ans}
		}
		q := r.Between(min/d, max/d)
		if q < 1 {
			q = 1
		}
		return Problem{A: itoa(d * q), B: itoa(d), Answer: itoa(q)}
	}
}

func roundTo(f float64, places int) float64 {
	m := math.Pow(10, float64(places))
	return math.Round(f*m) / m
}

func decimalAddition(min, max, places int) GenFunc {
	return func(r *Rand) Problem {
		m := math.Pow(10, float64(places))
		a := roundTo(math.Floor(r.Next()*float64(max-min+1)*m)/m+float64(min), places)
		b := roundTo(math.Floor(r.Next()*float64(max-min+1)*m)/m+float64(min), places)
		return Problem{A: ftoa(a, places), B: ftoa(b, places), Answer: ftoa(roundTo(a+b, places), places)}
	}
}

func decimalSubtraction(min, max, places int) GenFunc {
	return func(r *Rand) Problem {
		m := math.Pow(10, float64(places))
		a := roundTo(math.Floor(r.Next()*float64(max-min+1)*m)/m+float64(min), places)
		b := roundTo(math.Floor(r.Next()*a*m)/m, places)
		return Problem{A: ftoa(a, places), B: ftoa(b, places), Answer: ftoa(roundTo(a-b, places), places)}
	}
}

func decimalMultiplication(min, max, places int) GenFunc {
	return func(r *Rand) Problem {
		m := math.Pow(10, float64(places))
		a := roundTo(math.Floor(r.Next()*float64(max-min+1)*m)/m+float64(min), places)
		b := roundTo(math.Floor(r.Next()*10*m)/m+1, places)
		return Problem{A: ftoa(a, places), B: ftoa(b, places), Answer: ftoa(roundTo(a*b, places+1), places+1)}
	}
}

func decimalDivision(min, max, places int) GenFunc {
	return func(r *Rand) Problem {
		m := math.Pow(10, float64(places))
		divisor := roundTo(math.Floor(r.Next()*9*m)/m+1, places)
		quotient := roundTo(math.Floor(r.Next()*20*m)/m+1, places)
		dividend := roundTo(divisor*quotient, places+1)
		return Problem{A: ftoa(dividend, places+1), B: ftoa(divisor, places), Answer: ftoa(quotient, places)}
	}
}

var fractionDenoms = []int{2, 3, 4, 5, 6, 8, 10}
var smallDenoms = []int{2, 3, 4, 5, 6}

func fractionAddition() GenFunc {
	return func(r *Rand) Problem {
		d := fractionDenoms[r.IntN(len(fractionDenoms))]
		n1 := r.IntN(d-1) + 1
		n2 := r.IntN(d-1) + 1
		sum := n1 + n2
		ansNum := sum % d
		if ansNum == 0 {
			ansNum = d
		}
		whole := sum / d
		ans := fmt.Sprintf("%d/%d", ansNum, d)
		if whole > 0 && sum%d != 0 {
			ans = fmt.Sprintf("%d %d/%d", whole, ansNum, d)
		} else if sum%d == 0 {
			// n/n collapses to "1 d/d" form in the legacy engine; keep the
			// fraction spelling so string grading stays stable.
			ans = fmt.Sprintf("%d/%d", ansNum, d)
			if whole > 1 {
				ans = fmt.Sprintf("%d %d/%d", whole-1, ansNum, d)
			}
		}
		return Problem{
			A:      fmt.Sprintf("%d/%d", n1, d),
			B:      fmt.Sprintf("%d/%d", n2, d),
			Answer: ans,
		}
	}
}

func fractionSubtraction() GenFunc {
	return func(r *Rand) Problem {
		d := fractionDenoms[r.IntN(len(fractionDenoms))]
		n1 := r.IntN(d-1) + 2
		n2 := r.IntN(n1-1) + 1
		return Problem{
			A:      fmt.Sprintf("%d/%d", n1, d),
			B:      fmt.Sprintf("%d/%d", n2, d),
			Answer: fmt.Sprintf("%d/%d", n1-n2, d),
		}
	}
}

func fractionMultiplication() GenFunc {
	return func(r *Rand) Problem {
		d1 := smallDenoms[r.IntN(len(smallDenoms))]
		d2 := smallDenoms[r.IntN(len(smallDenoms))]
		n1 := r.IntN(d1-1) + 1
		n2 := r.IntN(d2-1) + 1
		return Problem{
			A:      fmt.Sprintf("%d/%d", n1, d1),
			B:      fmt.Sprintf("%d/%d", n2, d2),
			Answer: fmt.Sprintf("%d/%d", n1*n2, d1*d2),
		}
	}
}

func fractionDivision() GenFunc {
	return func(r *Rand) Problem {
		d1 := smallDenoms[r.IntN(len(smallDenoms))]
		d2 := smallDenoms[r.IntN(len(smallDenoms))]
		n1 := r.IntN(d1-1) + 1
		n2 := r.IntN(d2-1) + 1
		return Problem{
			A:      fmt.Sprintf("%d/%d", n1, d1),
			B:      fmt.Sprintf("%d/%d", n2, d2),
			Answer: fmt.Sprintf("%d/%d", n1*d2, d1*n2),
		}
	}
}
