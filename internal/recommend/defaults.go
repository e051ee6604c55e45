package recommend

// DefaultTaxonomy is the static fallback leaf list, used only when a request
// carries no dynamic leafPaths. Callers inject it through Options so tests
// can substitute arbitrary whitelists.
var DefaultTaxonomy = []string{
	"품사 > 대명사 > 재귀대명사",
	"품사 > 대명사 > 부정대명사",
	"품사 > 동사 > 구동사",
	"품사 > 형용사 > 비교급",
	"품사 > 형용사 > 최상급",
	"품사 > 부사 > 빈도부사",
	"품사 > 전치사 > 전치사 관용표현",
	"품사 > 접속사 > 등위접속사",
	"품사 > 접속사 > 종속접속사",
	"품사 > 접속사 > 상관접속사",
	"품사 > 접속사 > 접속부사",
	"문장의 형식 > 1형식",
	"문장의 형식 > 2형식",
	"문장의 형식 > 3형식",
	"문장의 형식 > 4형식",
	"문장의 형식 > 5형식",
	"구(Phrase) > 전치사구 > 형용사구",
	"구(Phrase) > 전치사구 > 부사구",
	"구(Phrase) > to부정사구 > 명사적 용법",
	"구(Phrase) > to부정사구 > 형용사적 용법",
	"구(Phrase) > to부정사구 > 부사적 용법",
	"구(Phrase) > 동명사구 > 주어 역할",
	"구(Phrase) > 동명사구 > 목적어 역할",
	"구(Phrase) > 동명사구 > 보어 역할",
	"구(Phrase) > 동명사구 > 전치사의 목적어 역할",
	"구(Phrase) > 동명사구 > 전치사 to와 to부정사의 구분",
	"구(Phrase) > 분사 > 현재분사",
	"구(Phrase) > 분사 > 과거분사",
	"구(Phrase) > 분사 > 분사구문",
	"구(Phrase) > 분사 > 독립분사구문",
	"구(Phrase) > 분사 > with A B",
	"구(Phrase) > 동격구",
	"구(Phrase) > 병렬구",
	"절(Clause) > 명사절 > that절",
	"절(Clause) > 명사절 > whether절 (if절)",
	"절(Clause) > 명사절 > 의문사절",
	"절(Clause) > 형용사절 > 관계대명사절",
	"절(Clause) > 형용사절 > 관계부사절",
	"절(Clause) > 부사절 > 시간의 부사절",
	"절(Clause) > 부사절 > 조건의 부사절",
	"절(Clause) > 부사절 > 이유의 부사절",
	"절(Clause) > 부사절 > 양보의 부사절",
	"절(Clause) > 부사절 > 결과의 부사절",
	"절(Clause) > 부사절 > 목적의 부사절",
	"절(Clause) > 동격절",
	"절(Clause) > 감탄문",
	"절(Clause) > 명령문",
	"특수 구문 > 비교급 구문",
	"특수 구문 > 강조 구문 > It is ~ that 강조구문",
	"특수 구문 > 강조 구문 > 동사 강조",
	"특수 구문 > 도치 구문",
	"특수 구문 > 가정법 구문 > 가정법 과거",
	"특수 구문 > 가정법 구문 > 가정법 과거완료",
	"특수 구문 > 가정법 구문 > 혼합 가정법",
	"특수 구문 > 가정법 구문 > as if 가정법",
	"특수 구문 > 가정법 구문 > I wish 가정법",
	"특수 구문 > 수동태 구문 > 3형식 수동태",
	"특수 구문 > 수동태 구문 > 4형식 수동태",
	"특수 구문 > 수동태 구문 > 5형식 수동태",
	"특수 구문 > 생략 구문",
}
